// Package accounts implements the Testoria account store: registration,
// login, the single active session, per-account quiz stats and the bounded
// completion history. State lives in an injected storage.Storage; the JSON
// layout matches what the original web client wrote, so existing data stays
// readable.
package accounts

import (
	"encoding/json"
	"time"
)

// historyLimit bounds the per-account completion history. Oldest records are
// dropped silently once the limit is exceeded.
const historyLimit = 50

// Stats holds aggregate counters for one account. FavoriteCategory is
// computed by collaborators, never by the store itself.
type Stats struct {
	TestsCompleted   int     `json:"testsCompleted"`
	TotalTimeSeconds int     `json:"totalTime"`
	FavoriteCategory *string `json:"favoriteCategory"`
}

// HistoryRecord describes one completed test, most recent first.
type HistoryRecord struct {
	TestID      string    `json:"testId"`
	TestTitle   string    `json:"testTitle"`
	Result      string    `json:"result"`
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   int       `json:"timeSpent"`
}

// Completion is the input for recording a finished test.
type Completion struct {
	TestID    string
	TestTitle string
	Result    string
	TimeSpent int // seconds; negative values are treated as zero
}

// Account is one registered user. CredentialSecret is opaque to everything
// except the credential codec; its JSON name is "password" because that is
// the field the original client stored the encoded secret under.
type Account struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	CredentialSecret     string          `json:"password"`
	CreatedAt            time.Time       `json:"createdAt"`
	IsAdmin              bool            `json:"isAdmin,omitempty"`
	NotificationsEnabled bool            `json:"notificationsEnabled"`
	Stats                Stats           `json:"stats"`
	History              []HistoryRecord `json:"history"`
	Achievements         []string        `json:"achievements"`
}

// accountJSON mirrors Account for decoding. NotificationsEnabled is a
// pointer so records written before the preference existed default to true
// instead of false.
type accountJSON struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	CredentialSecret     string          `json:"password"`
	CreatedAt            time.Time       `json:"createdAt"`
	IsAdmin              bool            `json:"isAdmin"`
	NotificationsEnabled *bool           `json:"notificationsEnabled"`
	Stats                Stats           `json:"stats"`
	History              []HistoryRecord `json:"history"`
	Achievements         []string        `json:"achievements"`
}

// UnmarshalJSON decodes and sanitizes an account record: counters are
// clamped to non-negative values and the history is truncated to the limit.
// Persisted data is not trusted to have the right shape.
func (a *Account) UnmarshalJSON(data []byte) error {
	var raw accountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	notifications := true
	if raw.NotificationsEnabled != nil {
		notifications = *raw.NotificationsEnabled
	}

	*a = Account{
		ID:                   raw.ID,
		Name:                 raw.Name,
		CredentialSecret:     raw.CredentialSecret,
		CreatedAt:            raw.CreatedAt,
		IsAdmin:              raw.IsAdmin,
		NotificationsEnabled: notifications,
		Stats:                raw.Stats,
		History:              raw.History,
		Achievements:         raw.Achievements,
	}

	if a.Stats.TestsCompleted < 0 {
		a.Stats.TestsCompleted = 0
	}
	if a.Stats.TotalTimeSeconds < 0 {
		a.Stats.TotalTimeSeconds = 0
	}
	if len(a.History) > historyLimit {
		a.History = a.History[:historyLimit]
	}
	if a.History == nil {
		a.History = []HistoryRecord{}
	}
	if a.Achievements == nil {
		a.Achievements = []string{}
	}

	return nil
}

// Clone returns a deep copy, so session reads never alias the collection.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}

	out := *a

	out.History = make([]HistoryRecord, len(a.History))
	copy(out.History, a.History)

	out.Achievements = make([]string, len(a.Achievements))
	copy(out.Achievements, a.Achievements)

	if a.Stats.FavoriteCategory != nil {
		category := *a.Stats.FavoriteCategory
		out.Stats.FavoriteCategory = &category
	}

	return &out
}
