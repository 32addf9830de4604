package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names ("type") rather than Go ones ("Type").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCandidate checks the shape of c and returns it as a Favorite.
// Field values are carried over untouched.
func ValidateCandidate(c Candidate) (Favorite, error) {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return Favorite{}, toValidationError(fieldErrs)
		}
		return Favorite{}, fmt.Errorf("validate favorite: %w", err)
	}

	itemType, ok := ParseItemType(c.Type)
	if !ok {
		// unreachable while the oneof tag and ParseItemType agree
		return Favorite{}, NewValidationError("type", ruleType)
	}

	return Favorite{Name: c.Name, Type: itemType, URL: c.URL}, nil
}

const ruleType = "must be movie or character"

func toValidationError(fieldErrs validator.ValidationErrors) *ValidationError {
	ve := &ValidationError{Violations: make([]Violation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ve.Violations = append(ve.Violations, Violation{Field: fe.Field(), Rule: ruleFor(fe)})
	}
	return ve
}

func ruleFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		if fe.Field() == "type" {
			return ruleType
		}
		return "must be one of: " + fe.Param()
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// DecodeCandidate reads exactly one JSON object from r.
// Anything that cannot be read as {name, type, url} strings is a ValidationError,
// and so is any data after the object.
func DecodeCandidate(r io.Reader) (Candidate, error) {
	dec := json.NewDecoder(r)

	var c Candidate
	if err := dec.Decode(&c); err != nil {
		return Candidate{}, decodeError(err)
	}

	var trailing json.RawMessage
	switch err := dec.Decode(&trailing); {
	case errors.Is(err, io.EOF):
		return c, nil
	case err == nil, isSyntax(err):
		return Candidate{}, &ValidationError{
			Violations: []Violation{{Field: "body", Rule: ruleSingleObject}},
			Err:        err,
		}
	default:
		return Candidate{}, decodeError(err)
	}
}

const ruleSingleObject = "must be a single JSON object"

func isSyntax(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// decodeError keeps err as the cause so callers can still tell a read
// failure (ex: *http.MaxBytesError) from bad input.
func decodeError(err error) *ValidationError {
	var (
		typeErr *json.UnmarshalTypeError
		ve      *ValidationError
	)
	switch {
	case errors.Is(err, io.EOF):
		ve = NewValidationError("body", "is required")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		ve = NewValidationError(typeErr.Field, "must be a string")
	case errors.As(err, &typeErr), isSyntax(err):
		ve = NewValidationError("body", "must be a JSON object")
	default:
		ve = NewValidationError("body", "could not be read")
	}
	ve.Err = err
	return ve
}
