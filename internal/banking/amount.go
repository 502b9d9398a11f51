package banking

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a caller-supplied amount such as "500" or "1e3".
// Balances are kept in whole units, so fractional values are rejected.
// Range checks against the transaction limits happen in the operation.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s is not a whole amount", ErrInvalidAmount, d)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, d)
	}
	return d.IntPart(), nil
}
