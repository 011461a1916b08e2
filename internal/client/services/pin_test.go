package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/jobkeeper/internal/cryptox"
)

var cheap = cryptox.Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func newAuth(f *fixture) *AuthService {
	return NewAuthService(f.repo, f.data, nil).WithParams(cheap)
}

func TestPIN_SetVerify(t *testing.T) {
	f := newFixture(t)
	a := newAuth(f)
	ctx := context.Background()

	has, err := a.HasPIN(ctx)
	require.NoError(t, err)
	assert.False(t, has)
	require.ErrorIs(t, a.VerifyPIN(ctx, "1234"), ErrPINNotSet)

	require.NoError(t, a.SetPIN(ctx, "1234"))
	has, err = a.HasPIN(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, a.VerifyPIN(ctx, "1234"))
	require.ErrorIs(t, a.VerifyPIN(ctx, "4321"), ErrWrongPIN)
	// no lockout
	require.NoError(t, a.VerifyPIN(ctx, "1234"))
}

func TestPIN_Validation(t *testing.T) {
	a := newAuth(newFixture(t))
	ctx := context.Background()

	for _, pin := range []string{"", "12", "abcd", "123456789"} {
		require.ErrorIs(t, a.SetPIN(ctx, pin), ErrValidation, pin)
	}
}

func TestClearAllData(t *testing.T) {
	f := newFixture(t)
	a := newAuth(f)
	ctx := context.Background()

	require.NoError(t, a.SetPIN(ctx, "1234"))
	require.NoError(t, NewSettingsService(f.store).Save(ctx, models.UserSettings{Country: "FR"}))
	_, err := f.data.AddClient(ctx, models.NewClient{Name: "Acme"})
	require.NoError(t, err)
	_, err = f.data.AddInvoice(ctx, models.NewInvoice{ClientID: "c", LineItems: []models.LineItem{{Amount: 1}}})
	require.NoError(t, err)

	require.ErrorIs(t, a.ClearAllData(ctx, "0000"), ErrWrongPIN)
	require.Len(t, f.data.Clients(), 1)

	require.NoError(t, a.ClearAllData(ctx, "1234"))
	assert.Empty(t, f.data.Clients())
	assert.Empty(t, f.data.Invoices())

	has, err := a.HasPIN(ctx)
	require.NoError(t, err)
	assert.False(t, has, "the pin is cleared with the data")

	all, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, records.KeyUserSettings)

	inv, err := f.data.AddInvoice(ctx, models.NewInvoice{ClientID: "c", LineItems: []models.LineItem{{Amount: 1}}})
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
}
