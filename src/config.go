package gauge

// EvalConfig holds evaluator settings - ALL fields required
type EvalConfig struct {
	BatchSize int
	Workers   int
}

// ValidateEvalConfig checks all required fields are set
func ValidateEvalConfig(cfg EvalConfig) error {
	if cfg.BatchSize <= 0 {
		return errorf("BatchSize must be > 0, got %d", cfg.BatchSize)
	}
	if cfg.Workers <= 0 {
		return errorf("Workers must be > 0, got %d", cfg.Workers)
	}
	return nil
}
