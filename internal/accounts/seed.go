package accounts

import (
	"context"
	"fmt"
)

// seedAccounts are the accounts created on first start: one administrator
// and two regular users. Passwords run through the configured codec at
// bootstrap time so the seeds stay loginable under any credential scheme.
var seedAccounts = []struct {
	name     string
	password string
	isAdmin  bool
}{
	{name: "admin", password: "admin2024", isAdmin: true},
	{name: "alice", password: "alice2024"},
	{name: "bob", password: "bob2024"},
}

// BootstrapDefaults populates an empty collection with the seed accounts.
// A non-empty collection is never touched. No session is established.
func (m *Manager) BootstrapDefaults(ctx context.Context) error {
	all, err := m.loadAccounts(ctx)
	if err != nil {
		return err
	}
	if len(all) > 0 {
		return nil
	}

	for _, seed := range seedAccounts {
		secret, err := m.codec.Encode(seed.password)
		if err != nil {
			return fmt.Errorf("failed to encode seed credential: %w", err)
		}
		all = append(all, Account{
			ID:                   m.newID(),
			Name:                 seed.name,
			CredentialSecret:     secret,
			CreatedAt:            m.now().UTC(),
			IsAdmin:              seed.isAdmin,
			NotificationsEnabled: true,
			History:              []HistoryRecord{},
			Achievements:         []string{},
		})
	}

	if err := m.saveAccounts(ctx, all); err != nil {
		return err
	}

	m.log.Info(ctx, "seeded default accounts", "count", len(all))
	return nil
}
