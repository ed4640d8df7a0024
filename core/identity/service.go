package identity

import (
	"errors"
	"time"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/student"
)

var (
	// errors
	ErrNotFound      = errors.New("student not found; check the name and try again")
	ErrNoLedgerEntry = errors.New("no ledger entry")
	ErrOutOfCredits  = errors.New("out of credits")

	errNameRequired = errors.New("a name is required")
	errInvalidRole  = errors.New("unknown role")
)

type (
	LedgerRepository interface {
		GetCredit(key Key) (CreditInfo, error)
		SetCredit(key Key, info CreditInfo) error
	}

	ProRepository interface {
		IsPro(key Key) (bool, error)
		// AddPro is idempotent.
		AddPro(key Key) error
	}

	// StudentDirectory resolves login names against the roster.
	StudentDirectory interface {
		GetByName(name string) (student.Student, error)
	}

	Service struct {
		ledger   LedgerRepository
		pro      ProRepository
		students StudentDirectory
		conf     core.CreditConfig
	}
)

func NewService(ledger LedgerRepository, pro ProRepository, students StudentDirectory, conf core.CreditConfig) *Service {
	return &Service{ledger: ledger, pro: pro, students: students, conf: conf}
}

// Login resolves a (name, role) pair to an Identity. Students must match a
// roster entry case-insensitively; unknown names fail with ErrNotFound and
// leave no trace in the ledger. Any non-empty name logs in as a teacher.
// On success the ledger entry is created or, when the reset interval has
// elapsed since lastReset, topped back up to the daily allowance. This is the
// only trigger for a reset.
func (svc *Service) Login(name string, role Role) (Identity, error) {
	name = core.CleanString(name)
	if name == "" {
		return Identity{}, core.NewValidationError(errNameRequired, core.FieldError{Field: "name", Error: errNameRequired.Error()})
	}
	if !role.IsValid() {
		return Identity{}, core.NewValidationError(errInvalidRole, core.FieldError{Field: "role", Error: errInvalidRole.Error()})
	}

	if role == RoleStudent {
		s, err := svc.students.GetByName(name)
		if err != nil {
			return Identity{}, ErrNotFound
		}
		name = s.Name // canonical roster casing
	}

	key := NewKey(role, name)
	now := time.Now().UTC()

	info, err := svc.ledger.GetCredit(key)
	switch {
	case err == ErrNoLedgerEntry, err == nil && now.Sub(info.LastReset) > svc.conf.ResetInterval:
		info = CreditInfo{Credits: svc.conf.DailyAllowance, LastReset: now}
		if err = svc.ledger.SetCredit(key, info); err != nil {
			return Identity{}, err
		}
	case err != nil:
		return Identity{}, err
	}

	isPro, err := svc.pro.IsPro(key)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Name: name, Role: role, IsPro: isPro}, nil
}

// Credits returns the identity's remaining allowance. An identity that never
// logged in has no entry and reports 0.
func (svc *Service) Credits(id Identity) (int, error) {
	info, err := svc.ledger.GetCredit(id.Key())
	if err == ErrNoLedgerEntry {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return info.Credits, nil
}

// OutOfCredits reports whether the identity may start another generation.
func (svc *Service) OutOfCredits(id Identity) (bool, error) {
	if id.IsPro {
		return false, nil
	}
	credits, err := svc.Credits(id)
	if err != nil {
		return false, err
	}
	return credits <= 0, nil
}

// Consume spends one credit. Pro identities are exempt. The zero-floor gate
// lives here: an exhausted ledger yields ErrOutOfCredits instead of relying
// on callers to have checked first.
func (svc *Service) Consume(id Identity) error {
	if id.IsPro {
		return nil
	}

	key := id.Key()
	info, err := svc.ledger.GetCredit(key)
	if err == ErrNoLedgerEntry || (err == nil && info.Credits <= 0) {
		return ErrOutOfCredits
	}
	if err != nil {
		return err
	}
	info.Credits--
	return svc.ledger.SetCredit(key, info)
}

// UpgradeToPro permanently exempts the identity from credit consumption.
// Idempotent; there is no downgrade.
func (svc *Service) UpgradeToPro(id Identity) (Identity, error) {
	if err := svc.pro.AddPro(id.Key()); err != nil {
		return Identity{}, err
	}
	id.IsPro = true
	return id, nil
}
