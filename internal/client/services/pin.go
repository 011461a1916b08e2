package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/jobkeeper/internal/cryptox"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
)

// userRecord is what lives under @user.
type userRecord struct {
	PINHash string `json:"pinHash"`
}

// AuthService guards destructive actions with a device PIN. Wrong PINs
// are reported but never locked out.
type AuthService struct {
	repo     *records.Repository
	data     *DataService
	params   cryptox.Params
	validate *validator.Validate
	log      logging.Logger
}

func NewAuthService(repo *records.Repository, data *DataService, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &AuthService{
		repo:     repo,
		data:     data,
		params:   cryptox.DefaultParams,
		validate: validator.New(),
		log:      log.With("module", "auth"),
	}
}

// WithParams overrides the hashing cost.
func (a *AuthService) WithParams(p cryptox.Params) *AuthService {
	a.params = p
	return a
}

func (a *AuthService) load(ctx context.Context) (*userRecord, error) {
	raw, err := a.repo.Store().Get(ctx, records.KeyUser)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var u userRecord
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &u, nil
}

func (a *AuthService) HasPIN(ctx context.Context) (bool, error) {
	u, err := a.load(ctx)
	if err != nil {
		return false, err
	}
	return u != nil && u.PINHash != "", nil
}

// SetPIN stores a new PIN: 4 to 8 digits.
func (a *AuthService) SetPIN(ctx context.Context, pin string) error {
	if err := a.validate.Var(pin, "required,numeric,min=4,max=8"); err != nil {
		return fmt.Errorf("%w: pin must be 4-8 digits", ErrValidation)
	}

	raw, err := json.Marshal(userRecord{PINHash: cryptox.HashSecret(pin, a.params)})
	if err != nil {
		return err
	}
	if err := a.repo.Store().Set(ctx, records.KeyUser, raw); err != nil {
		return fmt.Errorf("failed to save pin: %w", err)
	}
	return nil
}

// VerifyPIN returns ErrPINNotSet when no PIN exists and ErrWrongPIN on mismatch.
func (a *AuthService) VerifyPIN(ctx context.Context, pin string) error {
	u, err := a.load(ctx)
	if err != nil {
		return err
	}
	if u == nil || u.PINHash == "" {
		return ErrPINNotSet
	}

	ok, err := cryptox.VerifySecret(pin, u.PINHash)
	if err != nil {
		return err
	}
	if !ok {
		a.log.Warn(ctx, "wrong pin")
		return ErrWrongPIN
	}
	return nil
}

// ClearAllData wipes every record, counter and the PIN itself, keeping the
// settings, then reloads the data cache.
func (a *AuthService) ClearAllData(ctx context.Context, pin string) error {
	if err := a.VerifyPIN(ctx, pin); err != nil {
		return err
	}

	if err := a.repo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	a.log.Info(ctx, "all data cleared")

	if a.data == nil {
		return nil
	}
	return a.data.Refresh(ctx)
}
