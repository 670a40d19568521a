package util

import "testing"

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"yes", false, true},
		{"OFF", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SEHAT_TEST_BOOL", tt.value)
			if got := ParseBoolEnv("SEHAT_TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("ParseBoolEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SEHAT_TEST_INT", "5")
	if got := ParseIntEnv("SEHAT_TEST_INT", 3); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	t.Setenv("SEHAT_TEST_INT", "-1")
	if got := ParseIntEnv("SEHAT_TEST_INT", 3); got != 3 {
		t.Errorf("negative value should use default, got %d", got)
	}
}

func TestParseFloatEnv(t *testing.T) {
	t.Setenv("SEHAT_TEST_FLOAT", "0.45")
	if got := ParseFloatEnv("SEHAT_TEST_FLOAT", 0.3); got != 0.45 {
		t.Errorf("got %v, want 0.45", got)
	}
	t.Setenv("SEHAT_TEST_FLOAT", "2")
	if got := ParseFloatEnv("SEHAT_TEST_FLOAT", 0.3); got != 0.3 {
		t.Errorf("out-of-range value should use default, got %v", got)
	}
}
