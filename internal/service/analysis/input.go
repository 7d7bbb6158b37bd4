package analysis

import (
	"fmt"
	"strings"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

// validateInput bounds the raw request before any linguistic work runs.
func (s *Service) validateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("text", "required")
	}
	if s.cfg.MaxInputBytes > 0 && len(text) > s.cfg.MaxInputBytes {
		return fmt.Errorf("input is %d bytes, limit %d: %w", len(text), s.cfg.MaxInputBytes, domain.ErrTooLarge)
	}
	return nil
}
