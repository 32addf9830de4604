package logger

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseLevel(tt.in)
			if (got != nil) != tt.wantOK {
				t.Errorf("parseLevel(%q) = %v, want ok=%v", tt.in, got, tt.wantOK)
			}
		})
	}
}

func TestNew_DoesNotPanic(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		l := New("debug", pretty)
		l.With(String("component", "test")).Debug("hello", Int("n", 1), Bool("ok", true))
		_ = l.Sync()
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.With(String("component", "test")).Info("discarded", Int64("n", 1))
	l.Errorf("discarded %d", 1)
}
