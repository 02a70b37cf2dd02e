package bridge

import (
	"fmt"
	"strings"
)

// Mode selects how loudly contract violations are reported.
type Mode int

const (
	// Development panics on setup contract violations.
	Development Mode = iota
	// Production tolerates them and keeps the application running.
	Production
)

func (m Mode) String() string {
	switch m {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Accepted values are "development", "dev",
// "production" and "prod", in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return Development, nil
	case "production", "prod":
		return Production, nil
	}
	return Development, fmt.Errorf("unknown mode %q", s)
}
