package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/client/services"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/money"
)

// getSecret is swapped in tests.
var getSecret = GetSecret

func (a *App) settingsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		us := a.userSettings(ctx)
		a.printf("Country:   %s\n", us.Country)
		a.printf("Currency:  %s (%s)\n", us.Currency, us.Locale)
		a.printf("Business:  %s\n", us.BusinessName)
		a.printf("Email:     %s\n", us.BusinessEmail)
		a.printf("Phone:     %s\n", us.BusinessPhone)
		a.printf("Address:   %s\n", us.BusinessAddress)
		a.printf("Terms:     %s\n", us.DefaultPaymentTerms)
		a.printf("Example:   %s\n", services.Format(us, 1234.5))
		return nil
	}

	const usage = "settings [countries | country <CODE> | business name|email|phone|address|terms <value>]"
	switch args[0] {
	case "countries":
		for _, c := range money.Countries() {
			a.printf("%s  %-16s %s %s\n", c.Code, c.Name, c.Currency, c.Symbol)
		}
		return nil

	case "country":
		if err := needArgs(args, 2, usage); err != nil {
			return err
		}
		us, err := a.settings.SetCountry(ctx, args[1])
		if err != nil {
			return err
		}
		a.printf("Country set to %s, amounts now look like %s.\n", us.Country, services.Format(us, 1234.5))
		return nil

	case "business":
		if err := needArgs(args, 3, usage); err != nil {
			return err
		}
		us, err := a.settings.Get(ctx)
		if err != nil {
			return err
		}
		value := strings.Join(args[2:], " ")
		switch args[1] {
		case "name":
			us.BusinessName = value
		case "email":
			us.BusinessEmail = value
		case "phone":
			us.BusinessPhone = value
		case "address":
			us.BusinessAddress = value
		case "terms":
			us.DefaultPaymentTerms = value
		default:
			return errUsage(usage)
		}
		if err := a.settings.Save(ctx, us); err != nil {
			return err
		}
		a.printf("Saved.\n")
		return nil
	}
	return errUsage(usage)
}

func (a *App) readSecret(prompt string) (string, error) {
	b, err := getSecret(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return strings.TrimSpace(string(b)), nil
}

func (a *App) setPIN(ctx context.Context, _ []string) error {
	has, err := a.auth.HasPIN(ctx)
	if err != nil {
		return err
	}
	if has {
		current, err := a.readSecret("Current PIN")
		if err != nil {
			return err
		}
		if err := a.auth.VerifyPIN(ctx, current); err != nil {
			return err
		}
	}

	pin, err := a.readSecret("New PIN (4-8 digits)")
	if err != nil {
		return err
	}
	again, err := a.readSecret("Repeat PIN")
	if err != nil {
		return err
	}
	if pin != again {
		return errors.New("PINs do not match")
	}

	if err := a.auth.SetPIN(ctx, pin); err != nil {
		return err
	}
	a.printf("PIN saved.\n")
	return nil
}

func (a *App) clearAll(ctx context.Context, _ []string) error {
	pin, err := a.readSecret("PIN")
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, "This deletes every client, job, invoice, quote and note. Continue?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.\n")
		return nil
	}

	if err := a.auth.ClearAllData(ctx, pin); err != nil {
		if errors.Is(err, services.ErrPINNotSet) {
			return fmt.Errorf("%w: run setpin first", err)
		}
		return err
	}
	a.printf("All data cleared. Settings were kept.\n")
	return nil
}

func (a *App) register(ctx context.Context, _ []string) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}
	if err := a.api.Register(ctx, username, password); err != nil {
		return err
	}
	a.printf("Registered %s. Use 'login' to sign in.\n", username)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}
	if err := a.api.Login(ctx, username, password); err != nil {
		return err
	}

	a.mu.Lock()
	a.userName = username
	a.mu.Unlock()

	a.setMode(ctx, ModeOnline)
	a.printf("Logged in as %s.\n", username)
	return nil
}
