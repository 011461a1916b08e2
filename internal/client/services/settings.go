package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/jobkeeper/internal/money"
)

const DefaultPaymentTerms = "Net 30"

// SettingsService reads and writes the single @user_settings record.
type SettingsService struct {
	store kv.Store
}

func NewSettingsService(store kv.Store) *SettingsService {
	return &SettingsService{store: store}
}

// DefaultSettings derives settings from the default country.
func DefaultSettings() models.UserSettings {
	c := money.DefaultCountry()
	return models.UserSettings{
		Country:             c.Code,
		Currency:            c.Currency,
		Locale:              c.Locale,
		DefaultPaymentTerms: DefaultPaymentTerms,
	}
}

// Get returns the stored settings, or the defaults when none are stored.
// Missing country fields are filled from the country table.
func (s *SettingsService) Get(ctx context.Context) (models.UserSettings, error) {
	raw, err := s.store.Get(ctx, records.KeyUserSettings)
	if err != nil {
		return models.UserSettings{}, err
	}
	if len(raw) == 0 {
		return DefaultSettings(), nil
	}

	var us models.UserSettings
	if err := json.Unmarshal(raw, &us); err != nil {
		return models.UserSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return withCountryDefaults(us), nil
}

func (s *SettingsService) Save(ctx context.Context, us models.UserSettings) error {
	if us.Country != "" {
		if _, ok := money.LookupCountry(us.Country); !ok {
			return fmt.Errorf("%w: unknown country %q", ErrValidation, us.Country)
		}
	}
	us = withCountryDefaults(us)

	raw, err := json.Marshal(us)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.store.Set(ctx, records.KeyUserSettings, raw)
}

// SetCountry switches country, currency and locale together.
func (s *SettingsService) SetCountry(ctx context.Context, code string) (models.UserSettings, error) {
	c, ok := money.LookupCountry(code)
	if !ok {
		return models.UserSettings{}, fmt.Errorf("%w: unknown country %q", ErrValidation, code)
	}

	us, err := s.Get(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}
	us.Country, us.Currency, us.Locale = c.Code, c.Currency, c.Locale

	if err := s.Save(ctx, us); err != nil {
		return models.UserSettings{}, err
	}
	return us, nil
}

// Format renders amount in the settings' currency and locale.
func Format(us models.UserSettings, amount float64) string {
	return money.Format(amount, us.Currency, us.Locale)
}

func withCountryDefaults(us models.UserSettings) models.UserSettings {
	us.Country = strings.ToUpper(us.Country)
	c, ok := money.LookupCountry(us.Country)
	if !ok {
		c = money.DefaultCountry()
		if us.Country == "" {
			us.Country = c.Code
		}
	}
	if us.Currency == "" {
		us.Currency = c.Currency
	}
	if us.Locale == "" {
		us.Locale = c.Locale
	}
	if us.DefaultPaymentTerms == "" {
		us.DefaultPaymentTerms = DefaultPaymentTerms
	}
	return us
}
