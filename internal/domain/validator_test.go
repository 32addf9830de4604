package domain

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestValidateCandidate(t *testing.T) {
	tests := []struct {
		name       string
		input      Candidate
		wantErr    bool
		wantFields []string
	}{
		{
			name:  "movie",
			input: Candidate{Name: "A New Hope", Type: "movie", URL: "https://swapi.dev/api/films/1/"},
		},
		{
			name:  "character",
			input: Candidate{Name: "Luke Skywalker", Type: "character", URL: "https://swapi.dev/api/people/1/"},
		},
		{
			name:       "unknown type",
			input:      Candidate{Name: "Luke", Type: "hero", URL: "https://swapi.dev/api/people/1/"},
			wantErr:    true,
			wantFields: []string{"type"},
		},
		{
			name:       "type is case sensitive",
			input:      Candidate{Name: "A New Hope", Type: "Movie", URL: "https://swapi.dev/api/films/1/"},
			wantErr:    true,
			wantFields: []string{"type"},
		},
		{
			name:       "type is not trimmed",
			input:      Candidate{Name: "A New Hope", Type: " movie", URL: "https://swapi.dev/api/films/1/"},
			wantErr:    true,
			wantFields: []string{"type"},
		},
		{
			name:       "missing name",
			input:      Candidate{Type: "movie", URL: "https://swapi.dev/api/films/1/"},
			wantErr:    true,
			wantFields: []string{"name"},
		},
		{
			name:       "missing url",
			input:      Candidate{Name: "A New Hope", Type: "movie"},
			wantErr:    true,
			wantFields: []string{"url"},
		},
		{
			name:       "everything missing",
			input:      Candidate{},
			wantErr:    true,
			wantFields: []string{"name", "type", "url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCandidate(tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateCandidate() unexpected error: %v", err)
				}
				if got.Name != tt.input.Name || string(got.Type) != tt.input.Type || got.URL != tt.input.URL {
					t.Errorf("ValidateCandidate() = %+v, want fields of %+v unchanged", got, tt.input)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateCandidate() error = %v, want *ValidationError", err)
			}
			fields := ve.Fields()
			if len(fields) != len(tt.wantFields) {
				t.Errorf("ValidateCandidate() violations = %v, want fields %v", ve.Violations, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if _, ok := fields[f]; !ok {
					t.Errorf("ValidateCandidate() missing violation for field %q (got %v)", f, ve.Violations)
				}
			}
		})
	}
}

func TestValidateCandidate_TypeMessage(t *testing.T) {
	_, err := ValidateCandidate(Candidate{Name: "Luke", Type: "hero", URL: "..."})
	if err == nil {
		t.Fatal("ValidateCandidate() expected error")
	}
	if got, want := err.Error(), "type must be movie or character"; got != want {
		t.Errorf("ValidateCandidate() error = %q, want %q", got, want)
	}
	if KindOf(err) != KindValidation {
		t.Errorf("KindOf() = %v, want %v", KindOf(err), KindValidation)
	}
}

func TestDecodeCandidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      Candidate
		wantField string
		wantRule  string
	}{
		{
			name: "valid object",
			body: `{"name":"A New Hope","type":"movie","url":"https://swapi.dev/api/films/1/"}`,
			want: Candidate{Name: "A New Hope", Type: "movie", URL: "https://swapi.dev/api/films/1/"},
		},
		{
			name: "unknown fields ignored",
			body: `{"name":"Leia","type":"character","url":"u","rating":5}`,
			want: Candidate{Name: "Leia", Type: "character", URL: "u"},
		},
		{
			name:      "number instead of string",
			body:      `{"name":5,"type":"movie","url":"u"}`,
			wantField: "name",
		},
		{
			name:      "array body",
			body:      `[{"name":"Leia"}]`,
			wantField: "body",
		},
		{
			name:      "broken json",
			body:      `{"name":`,
			wantField: "body",
		},
		{
			name:      "empty body",
			body:      ``,
			wantField: "body",
		},
		{
			name: "trailing whitespace",
			body: "{\"name\":\"Leia\",\"type\":\"character\",\"url\":\"u\"}\n  ",
			want: Candidate{Name: "Leia", Type: "character", URL: "u"},
		},
		{
			name:      "truncated second value",
			body:      `{"name":"Luke","type":"character","url":"u"} {"junk":`,
			wantField: "body",
			wantRule:  ruleSingleObject,
		},
		{
			name:      "trailing garbage",
			body:      `{"name":"Luke","type":"character","url":"u"}garbage`,
			wantField: "body",
			wantRule:  ruleSingleObject,
		},
		{
			name:      "two objects",
			body:      `{"name":"Luke","type":"character","url":"u"}{"name":"Han","type":"character","url":"u"}`,
			wantField: "body",
			wantRule:  ruleSingleObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCandidate(strings.NewReader(tt.body))
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("DecodeCandidate() unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("DecodeCandidate() = %+v, want %+v", got, tt.want)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("DecodeCandidate() error = %v, want *ValidationError", err)
			}
			rule, ok := ve.Fields()[tt.wantField]
			if !ok {
				t.Errorf("DecodeCandidate() violations = %v, want field %q", ve.Violations, tt.wantField)
			}
			if tt.wantRule != "" && rule != tt.wantRule {
				t.Errorf("DecodeCandidate() rule = %q, want %q", rule, tt.wantRule)
			}
		})
	}
}

func TestDecodeCandidate_KeepsReadError(t *testing.T) {
	cause := errors.New("connection reset")
	_, err := DecodeCandidate(iotest.ErrReader(cause))

	if !errors.Is(err, cause) {
		t.Fatalf("DecodeCandidate() error = %v, want wrapping %v", err, cause)
	}
	if KindOf(err) != KindValidation {
		t.Errorf("KindOf() = %v, want %v", KindOf(err), KindValidation)
	}
}

func TestParseItemType(t *testing.T) {
	tests := []struct {
		input  string
		want   ItemType
		wantOK bool
	}{
		{"movie", ItemTypeMovie, true},
		{"character", ItemTypeCharacter, true},
		{"Movie", "", false},
		{"CHARACTER", "", false},
		{"", "", false},
		{"film", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseItemType(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseItemType(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
