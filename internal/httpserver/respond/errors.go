package respond

import (
	"errors"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

func asValidation(err error) (*domain.ValidationError, bool) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return &domain.ValidationError{}, false
}

func asUpstream(err error) (*domain.UpstreamError, bool) {
	var ue *domain.UpstreamError
	ok := errors.As(err, &ue)
	return ue, ok
}
