package config

import "testing"

func TestLoadReduceConfig_Defaults(t *testing.T) {
	cfg := LoadReduceConfig()
	if cfg.ChunkSize != 1024 {
		t.Errorf("ChunkSize = %d, want 1024", cfg.ChunkSize)
	}
	if cfg.MinLength != 50 {
		t.Errorf("MinLength = %d, want 50", cfg.MinLength)
	}
	if cfg.DefaultMaxLength != 500 || cfg.FinalMaxLength != 500 {
		t.Errorf("max lengths = %d/%d, want 500/500", cfg.DefaultMaxLength, cfg.FinalMaxLength)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
}

func TestLoadReduceConfig_FromEnv(t *testing.T) {
	t.Setenv("REDUCE_CHUNK_SIZE", "2048")
	t.Setenv("REDUCE_MAX_LENGTH", "200")
	t.Setenv("REDUCE_MIN_LENGTH", "25")
	t.Setenv("REDUCE_WORKERS", "4")

	cfg := LoadReduceConfig()
	if cfg.ChunkSize != 2048 {
		t.Errorf("ChunkSize = %d, want 2048", cfg.ChunkSize)
	}
	if cfg.DefaultMaxLength != 200 || cfg.IntermediateMaxLength != 200 || cfg.FinalMaxLength != 200 {
		t.Errorf("max lengths = %d/%d/%d, want 200 each",
			cfg.DefaultMaxLength, cfg.IntermediateMaxLength, cfg.FinalMaxLength)
	}
	if cfg.MinLength != 25 {
		t.Errorf("MinLength = %d, want 25", cfg.MinLength)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoadReduceConfig_InvalidFallsBack(t *testing.T) {
	t.Setenv("REDUCE_CHUNK_SIZE", "12")
	t.Setenv("REDUCE_WORKERS", "zero")

	cfg := LoadReduceConfig()
	if cfg.ChunkSize != 1024 {
		t.Errorf("ChunkSize = %d, want fallback 1024", cfg.ChunkSize)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want fallback 1", cfg.Workers)
	}
}
