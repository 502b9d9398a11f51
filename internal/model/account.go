package model

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// PhoneDigits is the exact length of a phone number.
	PhoneDigits = 10
	// PINDigits is the exact length of a PIN.
	PINDigits = 4
)

// ErrInvalidInput is matched by every FieldError.
var ErrInvalidInput = errors.New("invalid input")

// FieldError reports a single field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// Account is one record in the ledger file.
type Account struct {
	OwnerName     string
	Email         string
	PhoneNumber   int64 // 10 digits, leading zeros not preserved
	PIN           int   // 4 digits, leading zeros not preserved
	AccountNumber string
	Balance       int64
}

// NewAccount validates the caller-supplied fields and returns an Account
// with a zero balance.
func NewAccount(name, email, phone, pin, accountNumber string) (Account, error) {
	if name == "" {
		return Account{}, &FieldError{Field: "name", Reason: "required"}
	}
	if email == "" {
		return Account{}, &FieldError{Field: "email", Reason: "required"}
	}
	phoneNo, err := ParsePhone(phone)
	if err != nil {
		return Account{}, err
	}
	pinNo, err := ParsePIN(pin)
	if err != nil {
		return Account{}, err
	}

	return Account{
		OwnerName:     name,
		Email:         email,
		PhoneNumber:   phoneNo,
		PIN:           pinNo,
		AccountNumber: accountNumber,
	}, nil
}

// Phone returns the phone number zero-padded to 10 digits.
func (a Account) Phone() string {
	return fmt.Sprintf("%0*d", PhoneDigits, a.PhoneNumber)
}

// PINCode returns the PIN zero-padded to 4 digits.
func (a Account) PINCode() string {
	return fmt.Sprintf("%0*d", PINDigits, a.PIN)
}

// MatchesPIN reports whether pin is a 4-digit string with the same numeric
// value as the stored PIN.
func (a Account) MatchesPIN(pin string) bool {
	n, err := ParsePIN(pin)
	return err == nil && n == a.PIN
}

// ParsePhone validates a 10-digit phone number and returns its value.
func ParsePhone(s string) (int64, error) {
	if !ValidatePhone(s) {
		return 0, &FieldError{Field: "phone", Reason: fmt.Sprintf("must be exactly %d digits", PhoneDigits)}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: "phone", Reason: err.Error()}
	}
	return n, nil
}

// ParsePIN validates a 4-digit PIN and returns its value.
func ParsePIN(s string) (int, error) {
	if !ValidatePIN(s) {
		return 0, &FieldError{Field: "pin", Reason: fmt.Sprintf("must be exactly %d digits", PINDigits)}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FieldError{Field: "pin", Reason: err.Error()}
	}
	return n, nil
}

// ValidatePhone reports whether s is exactly 10 decimal digits.
func ValidatePhone(s string) bool {
	return allDigits(s, PhoneDigits)
}

// ValidatePIN reports whether s is exactly 4 decimal digits.
func ValidatePIN(s string) bool {
	return allDigits(s, PINDigits)
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
