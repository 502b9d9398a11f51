package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tellerkit/teller/internal/model"
)

// indent matches the layout of files written by earlier versions of the
// bank tooling, so diffs of database.json stay minimal.
const indent = "    "

// record is the on-disk shape of an account. The JSON keys are a
// compatibility contract and must not change.
type record struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	PhoneNumber   wholeNum `json:"phone no."`
	PIN           wholeNum `json:"pin"`
	AccountNumber string   `json:"Account no."`
	Balance       wholeNum `json:"Balance"`
}

// wholeNum is an integer that also decodes from a quoted string or an
// integral decimal such as 500.0. A null leaves the value unchanged.
type wholeNum int64

func (n *wholeNum) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if string(raw) == "null" {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return fmt.Errorf("unquoting %s: %w", raw, err)
		}
		raw = bytes.TrimSpace([]byte(s))
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("parsing number %q: %w", raw, err)
	}
	if !d.IsInteger() {
		return fmt.Errorf("number %s is not a whole number", d)
	}
	if !d.BigInt().IsInt64() {
		return fmt.Errorf("number %s out of range", d)
	}
	*n = wholeNum(d.IntPart())
	return nil
}

func toRecord(a model.Account) record {
	return record{
		Name:          a.OwnerName,
		Email:         a.Email,
		PhoneNumber:   wholeNum(a.PhoneNumber),
		PIN:           wholeNum(a.PIN),
		AccountNumber: a.AccountNumber,
		Balance:       wholeNum(a.Balance),
	}
}

func (r record) account() model.Account {
	return model.Account{
		OwnerName:     r.Name,
		Email:         r.Email,
		PhoneNumber:   int64(r.PhoneNumber),
		PIN:           int(r.PIN),
		AccountNumber: r.AccountNumber,
		Balance:       int64(r.Balance),
	}
}

// ReadAccounts decodes a ledger file. Empty input yields no accounts.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding ledger: %w", err)
	}

	accounts := make([]model.Account, 0, len(records))
	for _, rec := range records {
		accounts = append(accounts, rec.account())
	}
	return accounts, nil
}

// WriteAccounts encodes the full collection as an indented JSON array.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	records := make([]record, 0, len(accounts))
	for _, a := range accounts {
		records = append(records, toRecord(a))
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	return nil
}

// MarshalAccount renders one account in its on-disk shape.
func MarshalAccount(a model.Account) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(toRecord(a)); err != nil {
		return nil, fmt.Errorf("encoding account: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
