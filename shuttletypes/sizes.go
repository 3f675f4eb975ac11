package shuttletypes

import (
	"fmt"

	"github.com/docker/go-units"
)

// ParseSize parses a human-readable byte size ("10MB", "1.5GB", "64kb") into a
// byte count. Plain integers are accepted as byte counts.
func ParseSize(s string) (int64, error) {
	n, err := units.FromHumanSize(s)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("parse size %q: size must be positive", s)
	}
	return n, nil
}

// HumanSize formats a byte count for log output ("25MB", "1.5GB").
func HumanSize(n int64) string {
	return units.HumanSizeWithPrecision(float64(n), 3)
}
