package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name and password and creates a new account.
// A successful registration signs the new account in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter account name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	account, err := a.accounts.Register(ctx, name, password)
	if err != nil {
		return err
	}

	printlnFn("Welcome,", account.Name+"!")
	return nil
}

// Login prompts for credentials and signs in. The account store reports one
// generic error for a wrong name and a wrong password alike, so there is
// nothing to distinguish here.
func (a *App) Login(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter account name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	account, err := a.accounts.Login(ctx, name, password)
	if err != nil {
		return err
	}

	printlnFn("Welcome back,", account.Name+"!")
	return nil
}

// Logout ends the session. Logging out while signed out is not an error.
func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}
