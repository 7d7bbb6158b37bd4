package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535] (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMin < 0 {
		return fmt.Errorf("server.rate_limit_per_min must be >= 0 (got %d)", c.Server.RateLimitPerMin)
	}

	if err := c.Analysis.validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	return nil
}

func (a *AnalysisConfig) validate() error {
	if a.ConfidenceThreshold < 0 || a.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0,1] (got %v)", a.ConfidenceThreshold)
	}
	if a.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be > 0 (got %d)", a.MaxInputBytes)
	}
	if a.MaxPadas <= 0 {
		return fmt.Errorf("max_padas must be > 0 (got %d)", a.MaxPadas)
	}
	return nil
}
