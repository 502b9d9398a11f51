package banking

import (
	"errors"
	"log/slog"
	"math"

	"github.com/tellerkit/teller/internal/id"
	"github.com/tellerkit/teller/internal/ledger"
	"github.com/tellerkit/teller/internal/model"
)

const (
	// DefaultMaxDeposit is the per-transaction deposit limit.
	DefaultMaxDeposit int64 = 100_000
	// DefaultMaxWithdrawal is the per-transaction withdrawal limit.
	DefaultMaxWithdrawal int64 = 10_000

	// maxAllocAttempts bounds how many candidates Create draws before
	// giving up on finding an unused account number.
	maxAllocAttempts = 16
)

// Limits holds per-transaction amount ceilings.
type Limits struct {
	MaxDeposit    int64
	MaxWithdrawal int64
}

// DefaultLimits returns the standard deposit and withdrawal limits.
func DefaultLimits() Limits {
	return Limits{MaxDeposit: DefaultMaxDeposit, MaxWithdrawal: DefaultMaxWithdrawal}
}

// NumberSource yields candidate account numbers.
type NumberSource interface {
	Next() string
}

// Service implements the credential-gated account operations on top of
// a ledger Store. Every mutation is followed by a full save. Service is
// not safe for concurrent use.
type Service struct {
	store   *ledger.Store
	numbers NumberSource
	limits  Limits
	logger  *slog.Logger
}

// NewService creates an account Service.
func NewService(store *ledger.Store, numbers NumberSource, limits Limits, logger *slog.Logger) *Service {
	return &Service{store: store, numbers: numbers, limits: limits, logger: logger}
}

// CreateParams holds the fields for a new account.
type CreateParams struct {
	Name  string
	Email string
	Phone string
	PIN   string
}

// Create validates params, assigns an unused account number, appends the
// account and saves. If the save fails the account is still returned,
// together with a *PersistenceError.
func (s *Service) Create(params CreateParams) (model.Account, error) {
	acct, err := model.NewAccount(params.Name, params.Email, params.Phone, params.PIN, "")
	if err != nil {
		return model.Account{}, err
	}

	number, err := s.allocateNumber()
	if err != nil {
		return model.Account{}, err
	}
	acct.AccountNumber = number

	s.store.Append(acct)
	if err := s.persist("create"); err != nil {
		return acct, err
	}

	s.logger.Info("account created", "account", number)
	return acct, nil
}

// Deposit adds amount to the balance and returns the new balance.
func (s *Service) Deposit(accountNumber, pin string, amount int64) (int64, error) {
	i, acct, err := s.find(accountNumber, pin)
	if err != nil {
		return 0, err
	}
	if err := checkAmount(amount, s.limits.MaxDeposit); err != nil {
		return 0, err
	}
	if room := math.MaxInt64 - acct.Balance; acct.Balance > 0 && amount > room {
		return 0, &AmountError{Amount: amount, Limit: room, Overflow: true}
	}

	acct.Balance += amount
	s.store.Set(i, acct)
	if err := s.persist("deposit"); err != nil {
		return acct.Balance, err
	}

	s.logger.Info("deposit", "account", accountNumber, "amount", amount, "balance", acct.Balance)
	return acct.Balance, nil
}

// Withdraw subtracts amount from the balance and returns the new balance.
func (s *Service) Withdraw(accountNumber, pin string, amount int64) (int64, error) {
	i, acct, err := s.find(accountNumber, pin)
	if err != nil {
		return 0, err
	}
	if err := checkAmount(amount, s.limits.MaxWithdrawal); err != nil {
		return 0, err
	}
	if amount > acct.Balance {
		return 0, &FundsError{Balance: acct.Balance, Requested: amount}
	}

	acct.Balance -= amount
	s.store.Set(i, acct)
	if err := s.persist("withdraw"); err != nil {
		return acct.Balance, err
	}

	s.logger.Info("withdrawal", "account", accountNumber, "amount", amount, "balance", acct.Balance)
	return acct.Balance, nil
}

// Details returns a snapshot of the account.
func (s *Service) Details(accountNumber, pin string) (model.Account, error) {
	_, acct, err := s.find(accountNumber, pin)
	if err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// UpdateParams holds optional replacement values. Empty means unchanged.
type UpdateParams struct {
	Name  string
	Email string
	Phone string
	PIN   string
}

// UpdateResult is the account after an update plus any fields whose new
// value was rejected.
type UpdateResult struct {
	Account model.Account
	Ignored []FieldWarning
}

// Update applies every non-empty field in params. An invalid phone or PIN
// is skipped with a FieldWarning instead of failing the update. The
// ledger is saved once, after all fields are applied.
func (s *Service) Update(accountNumber, pin string, params UpdateParams) (UpdateResult, error) {
	i, acct, err := s.find(accountNumber, pin)
	if err != nil {
		return UpdateResult{}, err
	}

	var ignored []FieldWarning
	if params.Name != "" {
		acct.OwnerName = params.Name
	}
	if params.Email != "" {
		acct.Email = params.Email
	}
	if params.Phone != "" {
		if n, err := model.ParsePhone(params.Phone); err != nil {
			ignored = append(ignored, warningFor(err))
		} else {
			acct.PhoneNumber = n
		}
	}
	if params.PIN != "" {
		if n, err := model.ParsePIN(params.PIN); err != nil {
			ignored = append(ignored, warningFor(err))
		} else {
			acct.PIN = n
		}
	}

	s.store.Set(i, acct)
	result := UpdateResult{Account: acct, Ignored: ignored}
	if err := s.persist("update"); err != nil {
		return result, err
	}

	s.logger.Info("account updated", "account", accountNumber, "ignored", len(ignored))
	return result, nil
}

// Delete removes the account unconditionally. Confirmation belongs to
// the caller.
func (s *Service) Delete(accountNumber, pin string) error {
	i, _, err := s.find(accountNumber, pin)
	if err != nil {
		return err
	}

	s.store.Remove(i)
	if err := s.persist("delete"); err != nil {
		return err
	}

	s.logger.Info("account deleted", "account", accountNumber)
	return nil
}

// Count returns the number of accounts in the ledger.
func (s *Service) Count() int {
	return s.store.Len()
}

// find is the credential lookup shared by every operation except Create.
func (s *Service) find(accountNumber, pin string) (int, model.Account, error) {
	i := s.store.Index(func(a model.Account) bool {
		return a.AccountNumber == accountNumber && a.MatchesPIN(pin)
	})
	if i < 0 {
		s.logger.Warn("authentication failed", "account", accountNumber)
		return -1, model.Account{}, ErrAuthentication
	}
	return i, s.store.Get(i), nil
}

func (s *Service) allocateNumber() (string, error) {
	for attempt := 1; attempt <= maxAllocAttempts; attempt++ {
		n := s.numbers.Next()
		if id.IsAccountNumber(n) && !s.store.Contains(n) {
			return n, nil
		}
		s.logger.Debug("account number rejected, regenerating", "attempt", attempt)
	}
	return "", ErrAccountNumberSpace
}

func (s *Service) persist(op string) error {
	if err := s.store.Save(); err != nil {
		s.logger.Error("ledger not saved", "op", op, "error", err)
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func checkAmount(amount, limit int64) error {
	if amount <= 0 || amount > limit {
		return &AmountError{Amount: amount, Limit: limit}
	}
	return nil
}

func warningFor(err error) FieldWarning {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return FieldWarning{Field: fe.Field, Reason: fe.Reason}
	}
	return FieldWarning{Reason: err.Error()}
}
