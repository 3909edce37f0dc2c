// Package results keeps the application-wide log of completed tests and
// derives display achievements from it. The account store maintains its own
// bounded per-account history; this log is the unbounded record the profile
// page reads, stored under a single shared key like in the web client.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmorozov/testoria/internal/common"
	"github.com/dmorozov/testoria/internal/storage"
)

// Result is one completed test, attributed to an account.
type Result struct {
	AccountID   string    `json:"userId"`
	TestID      string    `json:"testId"`
	TestTitle   string    `json:"testTitle"`
	Result      string    `json:"result"`
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   int       `json:"timeSpent"`
}

// Log records results into the shared storage.
type Log struct {
	store storage.Storage
}

func NewLog(store storage.Storage) *Log {
	return &Log{store: store}
}

// Append adds a result to the end of the log.
func (l *Log) Append(ctx context.Context, r Result) error {
	all, err := l.load(ctx)
	if err != nil {
		return err
	}

	all = append(all, r)

	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := l.store.Set(ctx, common.KeyTestResults, data); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}

// ForAccount returns the results belonging to one account, oldest first.
func (l *Log) ForAccount(ctx context.Context, accountID string) ([]Result, error) {
	all, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0)
	for _, r := range all {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *Log) load(ctx context.Context) ([]Result, error) {
	data, err := l.store.Get(ctx, common.KeyTestResults)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	if data == nil {
		return []Result{}, nil
	}

	var all []Result
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return all, nil
}

// Achievement thresholds, in ascending order of tests completed.
var achievementLevels = []struct {
	threshold int
	label     string
}{
	{1, "First test"},
	{5, "Seasoned test taker"},
	{10, "Test master"},
}

// Achievements returns the labels earned for the given number of completed
// tests. The account store never writes these; they are derived for display.
func Achievements(testsCompleted int) []string {
	earned := make([]string, 0, len(achievementLevels))
	for _, level := range achievementLevels {
		if testsCompleted >= level.threshold {
			earned = append(earned, level.label)
		}
	}
	return earned
}
