package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmorozov/testoria/internal/accounts"
	"github.com/dmorozov/testoria/internal/common"
	"github.com/dmorozov/testoria/internal/results"
)

// formatDuration renders a number of seconds the way the profile page does.
func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, seconds%3600/60)
}

// Profile shows the signed-in account, its statistics and earned achievements.
func (a *App) Profile(ctx context.Context) error {
	account := a.accounts.Current()
	if account == nil {
		return common.ErrNoActiveSession
	}

	printlnFn("Account:", account.Name)
	printlnFn("Member since:", account.CreatedAt.Format("02.01.2006"))
	if account.IsAdmin {
		printlnFn("Role: administrator")
	}
	if !account.NotificationsEnabled {
		printlnFn("Notifications: off")
	}

	printlnFn("Tests completed:", account.Stats.TestsCompleted)
	printlnFn("Total time:", formatDuration(account.Stats.TotalTimeSeconds))
	if account.Stats.FavoriteCategory != nil {
		printlnFn("Favorite category:", *account.Stats.FavoriteCategory)
	}

	earned := results.Achievements(account.Stats.TestsCompleted)
	if len(earned) > 0 {
		printlnFn("Achievements:", strings.Join(earned, ", "))
	}

	return nil
}

// History lists the recent completed tests of the signed-in account,
// newest first.
func (a *App) History(ctx context.Context) error {
	account := a.accounts.Current()
	if account == nil {
		return common.ErrNoActiveSession
	}

	if len(account.History) == 0 {
		printlnFn("No completed tests yet.")
		return nil
	}

	for _, rec := range account.History {
		printlnFn(fmt.Sprintf("%s  %-30s %-10s %s",
			rec.CompletedAt.Format("02.01.2006 15:04"),
			rec.TestTitle, rec.Result, formatDuration(rec.TimeSpent)))
	}
	return nil
}

// Record registers a completed test for the signed-in account. This is the
// entry point a quiz runner would call; here it is interactive.
func (a *App) Record(ctx context.Context) error {
	account := a.accounts.Current()
	if account == nil {
		return common.ErrNoActiveSession
	}

	testID, err := getSimpleText(a.reader, "Test id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Test title", os.Stdout)
	if err != nil {
		return err
	}
	result, err := getSimpleText(a.reader, "Result (e.g. 8/10)", os.Stdout)
	if err != nil {
		return err
	}
	secsText, err := getSimpleText(a.reader, "Time spent, seconds", os.Stdout)
	if err != nil {
		return err
	}
	seconds, err := strconv.Atoi(secsText)
	if err != nil {
		return fmt.Errorf("invalid number of seconds: %w", err)
	}

	completion := accounts.Completion{
		TestID:    testID,
		TestTitle: title,
		Result:    result,
		TimeSpent: seconds,
	}
	if err := a.accounts.RecordCompletion(ctx, account.ID, completion); err != nil {
		return err
	}

	updated := a.accounts.Current()
	if err := a.results.Append(ctx, results.Result{
		AccountID:   account.ID,
		TestID:      testID,
		TestTitle:   title,
		Result:      result,
		CompletedAt: updated.History[0].CompletedAt,
		TimeSpent:   completion.TimeSpent,
	}); err != nil {
		return err
	}

	printlnFn("Recorded.")
	return nil
}

// Rename changes the signed-in account's name.
func (a *App) Rename(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New account name", os.Stdout)
	if err != nil {
		return err
	}

	account, err := a.accounts.Rename(ctx, name)
	if err != nil {
		return err
	}

	printlnFn("Renamed to", account.Name+".")
	return nil
}

// Notify toggles notifications for the signed-in account.
// mode is "on" or "off".
func (a *App) Notify(ctx context.Context, mode string) error {
	account := a.accounts.Current()
	if account == nil {
		return common.ErrNoActiveSession
	}

	var enabled bool
	switch mode {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		printlnFn("Usage: notify on|off")
		return nil
	}

	ok, err := a.accounts.SetNotificationPreference(ctx, account.ID, enabled)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Account not found.")
		return nil
	}

	printlnFn("Notifications", mode+".")
	return nil
}
