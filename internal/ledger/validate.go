package ledger

import (
	"fmt"

	"github.com/tellerkit/teller/internal/id"
	"github.com/tellerkit/teller/internal/model"
)

const (
	maxPIN   = 9999
	maxPhone = 9_999_999_999
)

// ValidationError describes one record that breaks a ledger invariant.
type ValidationError struct {
	Index         int
	AccountNumber string
	Description   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("record %d [%s]: %s", e.Index, e.AccountNumber, e.Description)
}

// Validate checks a loaded collection for records that the account
// operations would never have produced: malformed or duplicate account
// numbers, negative balances, missing names or emails, and out-of-range
// phone numbers or PINs. The ledger file may be edited by hand, so these
// are reported rather than repaired.
func Validate(accounts []model.Account) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int, len(accounts))

	for i, a := range accounts {
		fail := func(format string, args ...any) {
			errs = append(errs, ValidationError{Index: i, AccountNumber: a.AccountNumber, Description: fmt.Sprintf(format, args...)})
		}

		if !id.IsAccountNumber(a.AccountNumber) {
			fail("malformed account number")
		} else if first, dup := seen[a.AccountNumber]; dup {
			fail("duplicate of record %d", first)
		} else {
			seen[a.AccountNumber] = i
		}

		if a.Balance < 0 {
			fail("negative balance %d", a.Balance)
		}
		if a.OwnerName == "" {
			fail("missing name")
		}
		if a.Email == "" {
			fail("missing email")
		}
		if a.PIN < 0 || a.PIN > maxPIN {
			fail("PIN %d is not 4 digits", a.PIN)
		}
		if a.PhoneNumber < 0 || a.PhoneNumber > maxPhone {
			fail("phone number %d is not 10 digits", a.PhoneNumber)
		}
	}

	return errs
}
