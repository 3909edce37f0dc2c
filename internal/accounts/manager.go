package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmorozov/testoria/internal/common"
	"github.com/dmorozov/testoria/internal/logging"
	"github.com/dmorozov/testoria/internal/storage"
)

// Manager owns the account collection and the single active session.
//
// The persisted collection is the single source of truth: every operation
// re-reads it before mutating, and the in-memory session is a cached copy
// that is re-synchronized after each mutation touching the session account.
// There is no cross-process locking; concurrent writers from another
// process race and the last one to persist wins.
type Manager struct {
	store storage.Storage
	codec Codec
	log   logging.Logger

	current  *Account
	onChange func(*Account)

	// test seams
	now   func() time.Time
	newID func() string
}

// NewManager builds a Manager and restores the session persisted by a
// previous run, if any. A restored session pointing at an account that no
// longer exists in the collection is discarded rather than kept dangling.
func NewManager(ctx context.Context, store storage.Storage, codec Codec, log logging.Logger) (*Manager, error) {
	m := &Manager{
		store: store,
		codec: codec,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}

	if err := m.restoreSession(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// OnSessionChange registers the observer invoked whenever session membership
// changes: login, logout, rename, or a stat update on the session account.
// The argument is a copy of the session account, or nil after logout.
// At most one observer is kept; the last registration wins. Notification is
// fire-and-forget: with no observer registered it is simply dropped.
func (m *Manager) OnSessionChange(fn func(*Account)) {
	m.onChange = fn
}

// Register creates an account with zeroed stats and notifications enabled,
// persists it, and immediately establishes a session for it, exactly as if
// the new user had logged in.
func (m *Manager) Register(ctx context.Context, name, password string) (*Account, error) {
	name = strings.TrimSpace(name)

	all, err := m.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if findByName(all, name) >= 0 {
		return nil, common.ErrDuplicateName
	}

	secret, err := m.codec.Encode(password)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credential: %w", err)
	}

	account := Account{
		ID:                   m.newID(),
		Name:                 name,
		CredentialSecret:     secret,
		CreatedAt:            m.now().UTC(),
		NotificationsEnabled: true,
		History:              []HistoryRecord{},
		Achievements:         []string{},
	}

	all = append(all, account)
	if err := m.saveAccounts(ctx, all); err != nil {
		return nil, err
	}

	if err := m.setSession(ctx, &account); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "account registered", "name", account.Name, "id", account.ID)
	return account.Clone(), nil
}

// Login finds the account whose name matches case-insensitively and whose
// stored credential matches the password. Unknown name and wrong password
// produce the same error so callers cannot tell which names exist.
func (m *Manager) Login(ctx context.Context, name, password string) (*Account, error) {
	all, err := m.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if strings.EqualFold(all[i].Name, strings.TrimSpace(name)) &&
			m.codec.Verify(all[i].CredentialSecret, password) {
			if err := m.setSession(ctx, &all[i]); err != nil {
				return nil, err
			}
			m.log.Info(ctx, "login", "name", all[i].Name)
			return all[i].Clone(), nil
		}
	}

	return nil, common.ErrInvalidCredentials
}

// Logout clears the session. Calling it with no session active is a no-op,
// not an error, and does not notify the observer. The cached session copy
// survives a failed delete so the caller can retry.
func (m *Manager) Logout(ctx context.Context) error {
	if m.current == nil {
		return nil
	}

	if err := m.store.DeleteMany(ctx, common.KeyCurrentSession, common.KeySessionActive); err != nil {
		return err
	}

	name := m.current.Name
	m.current = nil

	m.log.Info(ctx, "logout", "name", name)
	m.notify()
	return nil
}

// Current returns a copy of the session account, or nil when logged out.
func (m *Manager) Current() *Account {
	return m.current.Clone()
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

// RecordCompletion updates the session account's stats and history for one
// finished test. With no active session it returns silently. A non-empty
// accountID that differs from the session account is recorded against the
// session anyway, matching the original client; the mismatch is logged.
func (m *Manager) RecordCompletion(ctx context.Context, accountID string, c Completion) error {
	if m.current == nil {
		return nil
	}
	if accountID != "" && accountID != m.current.ID {
		m.log.Warn(ctx, "completion targeted another account, recording against session",
			"target", accountID, "session", m.current.ID)
	}

	all, err := m.loadAccounts(ctx)
	if err != nil {
		return err
	}

	i := findByID(all, m.current.ID)
	if i < 0 {
		return fmt.Errorf("session account %s: %w", m.current.ID, common.ErrNotFound)
	}

	timeSpent := c.TimeSpent
	if timeSpent < 0 {
		timeSpent = 0
	}

	all[i].Stats.TestsCompleted++
	all[i].Stats.TotalTimeSeconds += timeSpent

	record := HistoryRecord{
		TestID:      c.TestID,
		TestTitle:   c.TestTitle,
		Result:      c.Result,
		CompletedAt: m.now().UTC(),
		TimeSpent:   timeSpent,
	}
	all[i].History = append([]HistoryRecord{record}, all[i].History...)
	if len(all[i].History) > historyLimit {
		all[i].History = all[i].History[:historyLimit]
	}

	if err := m.saveAccounts(ctx, all); err != nil {
		return err
	}
	return m.refreshSession(ctx, &all[i])
}

// Rename changes the session account's name. The new name must not collide
// case-insensitively with any other account; colliding with the account's
// own name is allowed.
func (m *Manager) Rename(ctx context.Context, newName string) (*Account, error) {
	if m.current == nil {
		return nil, common.ErrNoActiveSession
	}

	newName = strings.TrimSpace(newName)

	all, err := m.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if j := findByName(all, newName); j >= 0 && all[j].ID != m.current.ID {
		return nil, common.ErrDuplicateName
	}

	i := findByID(all, m.current.ID)
	if i < 0 {
		return nil, fmt.Errorf("session account %s: %w", m.current.ID, common.ErrNotFound)
	}

	all[i].Name = newName
	if err := m.saveAccounts(ctx, all); err != nil {
		return nil, err
	}
	if err := m.refreshSession(ctx, &all[i]); err != nil {
		return nil, err
	}
	return all[i].Clone(), nil
}

// SetNotificationPreference flips the notification flag on the target
// account. An unknown id is a routine outcome reported as false, not an
// error.
func (m *Manager) SetNotificationPreference(ctx context.Context, accountID string, enabled bool) (bool, error) {
	all, err := m.loadAccounts(ctx)
	if err != nil {
		return false, err
	}

	i := findByID(all, accountID)
	if i < 0 {
		return false, nil
	}

	all[i].NotificationsEnabled = enabled
	if err := m.saveAccounts(ctx, all); err != nil {
		return false, err
	}

	if m.current != nil && m.current.ID == accountID {
		m.current = all[i].Clone()
		if err := m.persistSession(ctx); err != nil {
			return false, err
		}
	}
	return true, nil
}

// NotificationsEnabled lists accounts that opted in, in collection order.
func (m *Manager) NotificationsEnabled(ctx context.Context) ([]Account, error) {
	return m.filter(ctx, func(a *Account) bool { return a.NotificationsEnabled })
}

// GrantAdmin sets the admin flag on the target account. It performs no
// caller authorization; restricting access is the UI layer's job.
func (m *Manager) GrantAdmin(ctx context.Context, accountID string) (bool, error) {
	return m.setAdmin(ctx, accountID, true)
}

// RevokeAdmin clears the admin flag on the target account.
func (m *Manager) RevokeAdmin(ctx context.Context, accountID string) (bool, error) {
	return m.setAdmin(ctx, accountID, false)
}

func (m *Manager) setAdmin(ctx context.Context, accountID string, isAdmin bool) (bool, error) {
	all, err := m.loadAccounts(ctx)
	if err != nil {
		return false, err
	}

	i := findByID(all, accountID)
	if i < 0 {
		return false, nil
	}

	all[i].IsAdmin = isAdmin
	if err := m.saveAccounts(ctx, all); err != nil {
		return false, err
	}

	if m.current != nil && m.current.ID == accountID {
		m.current = all[i].Clone()
		if err := m.persistSession(ctx); err != nil {
			return false, err
		}
	}

	m.log.Info(ctx, "admin flag changed", "name", all[i].Name, "isAdmin", isAdmin)
	return true, nil
}

// IsAdmin reports the admin flag of the given account, or of the session
// account when the argument is nil. The flag is read from the persisted
// collection, not from the possibly stale copy the caller holds.
func (m *Manager) IsAdmin(ctx context.Context, account *Account) (bool, error) {
	target := account
	if target == nil {
		target = m.current
	}
	if target == nil {
		return false, nil
	}

	all, err := m.loadAccounts(ctx)
	if err != nil {
		return false, err
	}

	i := findByID(all, target.ID)
	if i < 0 {
		return false, nil
	}
	return all[i].IsAdmin, nil
}

// Admins lists accounts holding the admin flag, in collection order.
func (m *Manager) Admins(ctx context.Context) ([]Account, error) {
	return m.filter(ctx, func(a *Account) bool { return a.IsAdmin })
}

func (m *Manager) filter(ctx context.Context, keep func(*Account) bool) ([]Account, error) {
	all, err := m.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Account, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, *all[i].Clone())
		}
	}
	return out, nil
}

// loadAccounts reads and decodes the persisted collection. An absent key is
// an empty collection, not an error.
func (m *Manager) loadAccounts(ctx context.Context) ([]Account, error) {
	data, err := m.store.Get(ctx, common.KeyAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if data == nil {
		return []Account{}, nil
	}

	var all []Account
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return all, nil
}

func (m *Manager) saveAccounts(ctx context.Context, all []Account) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	if err := m.store.Set(ctx, common.KeyAccounts, data); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

// setSession makes the given account the active session, persists the
// session keys, and notifies the observer.
func (m *Manager) setSession(ctx context.Context, account *Account) error {
	m.current = account.Clone()

	if err := m.persistSession(ctx); err != nil {
		return err
	}

	m.notify()
	return nil
}

// persistSession writes both session keys as one commit, without notifying.
func (m *Manager) persistSession(ctx context.Context) error {
	data, err := json.Marshal(m.current)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.SetMany(ctx, map[string][]byte{
		common.KeyCurrentSession: data,
		common.KeySessionActive:  []byte("true"),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// refreshSession re-synchronizes the cached session copy after a mutation
// to the session account, persisting the updated copy.
func (m *Manager) refreshSession(ctx context.Context, account *Account) error {
	return m.setSession(ctx, account)
}

// restoreSession reconstructs the session persisted by a previous run.
// The session copy is only trusted if its id still exists in the collection.
func (m *Manager) restoreSession(ctx context.Context) error {
	data, err := m.store.Get(ctx, common.KeyCurrentSession)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if data == nil {
		return nil
	}

	var saved Account
	if err := json.Unmarshal(data, &saved); err != nil {
		m.log.Warn(ctx, "discarding unreadable persisted session", "error", err)
		return nil
	}

	all, err := m.loadAccounts(ctx)
	if err != nil {
		return err
	}

	i := findByID(all, saved.ID)
	if i < 0 {
		m.log.Warn(ctx, "discarding dangling persisted session", "id", saved.ID)
		return m.store.DeleteMany(ctx, common.KeyCurrentSession, common.KeySessionActive)
	}

	// The collection record is authoritative, not the persisted copy.
	m.current = all[i].Clone()
	return nil
}

func (m *Manager) notify() {
	if m.onChange == nil {
		return
	}
	m.onChange(m.current.Clone())
}

func findByID(all []Account, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}

func findByName(all []Account, name string) int {
	for i := range all {
		if strings.EqualFold(all[i].Name, name) {
			return i
		}
	}
	return -1
}
