package config

import (
	"testing"
	"time"
)

func TestLoadEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "from-env")
	if got := LoadEnvString("TEST_STRING", "default"); got != "from-env" {
		t.Errorf("LoadEnvString = %q, want from-env", got)
	}
	if got := LoadEnvString("TEST_STRING_UNSET", "default"); got != "default" {
		t.Errorf("LoadEnvString unset = %q, want default", got)
	}
}

func TestLoadEnvWithFallback(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		validator    func(string) error
		wantValue    string
		wantFallback bool
	}{
		{
			name:      "unset uses default without warning",
			wantValue: "default",
		},
		{
			name:      "valid value passes",
			envValue:  "30 5 * * *",
			validator: ValidateCronSchedule,
			wantValue: "30 5 * * *",
		},
		{
			name:         "invalid value falls back with warning",
			envValue:     "not a schedule",
			validator:    ValidateCronSchedule,
			wantValue:    "default",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_FALLBACK", tt.envValue)
			}
			result := LoadEnvWithFallback("TEST_FALLBACK", "default", tt.validator)
			if result.Value.(string) != tt.wantValue {
				t.Errorf("Value = %v, want %v", result.Value, tt.wantValue)
			}
			if result.FallbackApplied != tt.wantFallback {
				t.Errorf("FallbackApplied = %v, want %v", result.FallbackApplied, tt.wantFallback)
			}
			if tt.wantFallback && len(result.Warnings) == 0 {
				t.Error("expected a warning on fallback")
			}
		})
	}
}

func TestLoadEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		wantValue    int
		wantFallback bool
	}{
		{name: "unset", wantValue: 42},
		{name: "valid", envValue: "7", wantValue: 7},
		{name: "not a number", envValue: "seven", wantValue: 42, wantFallback: true},
		{name: "out of range", envValue: "999", wantValue: 42, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_INT", tt.envValue)
			}
			result := LoadEnvInt("TEST_INT", 42, func(v int) error {
				return ValidateIntRange(v, 1, 100)
			})
			if result.Value.(int) != tt.wantValue {
				t.Errorf("Value = %v, want %d", result.Value, tt.wantValue)
			}
			if result.FallbackApplied != tt.wantFallback {
				t.Errorf("FallbackApplied = %v, want %v", result.FallbackApplied, tt.wantFallback)
			}
		})
	}
}

func TestLoadEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "45s")
	result := LoadEnvDuration("TEST_DURATION", time.Minute, ValidatePositiveDuration)
	if result.Value.(time.Duration) != 45*time.Second {
		t.Errorf("Value = %v, want 45s", result.Value)
	}

	t.Setenv("TEST_DURATION", "-5s")
	result = LoadEnvDuration("TEST_DURATION", time.Minute, ValidatePositiveDuration)
	if !result.FallbackApplied || result.Value.(time.Duration) != time.Minute {
		t.Errorf("negative duration: Value = %v FallbackApplied = %v", result.Value, result.FallbackApplied)
	}
}
