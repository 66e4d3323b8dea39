package utils

import (
	"fmt"
	"receh48/src/config"
	"receh48/src/types"
	"strings"
)

func IsProd() bool {
	return config.API_ENV == string(types.Production)
}

// WithSuffix appends the environment to a queue name outside production,
// so "emails" becomes "emails-test" on the test stack.
func WithSuffix(name string) string {
	if IsProd() || name == "" {
		return name
	}
	return fmt.Sprintf("%s-%s", name, config.API_ENV)
}

// NullIfBlank trims s and returns nil for an empty result.
func NullIfBlank(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}
