package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmorozov/testoria/internal/common"
)

// errAdminOnly is reported when a non-admin invokes an admin command. Role
// checks here only gate the console; the account store enforces nothing.
var errAdminOnly = errors.New("administrator rights required")

func (a *App) requireAdmin(ctx context.Context) error {
	account := a.accounts.Current()
	if account == nil {
		return common.ErrNoActiveSession
	}

	isAdmin, err := a.accounts.IsAdmin(ctx, account)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errAdminOnly
	}
	return nil
}

// Admins lists all administrator accounts.
func (a *App) Admins(ctx context.Context) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	admins, err := a.accounts.Admins(ctx)
	if err != nil {
		return err
	}

	if len(admins) == 0 {
		printlnFn("No administrators.")
		return nil
	}
	for _, adm := range admins {
		printlnFn(adm.Name, "("+adm.ID+")")
	}
	return nil
}

// Grant makes another account an administrator.
func (a *App) Grant(ctx context.Context) error {
	return a.changeRole(ctx, true)
}

// Revoke removes administrator rights from an account.
func (a *App) Revoke(ctx context.Context) error {
	return a.changeRole(ctx, false)
}

func (a *App) changeRole(ctx context.Context, grant bool) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Account id", os.Stdout)
	if err != nil {
		return err
	}

	var ok bool
	if grant {
		ok, err = a.accounts.GrantAdmin(ctx, id)
	} else {
		ok, err = a.accounts.RevokeAdmin(ctx, id)
	}
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Account not found.")
		return nil
	}

	printlnFn("Done.")
	return nil
}
