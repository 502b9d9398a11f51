package banking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"500", 500},
		{" 100000 ", 100000},
		{"500.00", 500},
		{"1e3", 1000},
		{"0", 0},
		{"-20", -20},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseAmount_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"abc",
		"10.5",
		"0.01",
		"99999999999999999999",
	}
	for _, input := range badInputs {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input: %s", input)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid amount 0: must be positive", (&AmountError{Amount: 0, Limit: 10}).Error())
	assert.Equal(t, "invalid amount 11: exceeds the per-transaction limit of 10", (&AmountError{Amount: 11, Limit: 10}).Error())
	assert.Equal(t, "insufficient funds: requested 600, current balance 500", (&FundsError{Balance: 500, Requested: 600}).Error())
	assert.Equal(t, "new phone ignored: must be exactly 10 digits", FieldWarning{Field: "phone", Reason: "must be exactly 10 digits"}.Error())
}
