package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lpmorais/dosewatch/pkg/model"
	"github.com/lpmorais/dosewatch/pkg/notify"
	"github.com/lpmorais/dosewatch/pkg/store"
)

const (
	defaultDir = ".dosewatch"
	defaultDB  = ".dosewatch/dosewatch.db"
)

// app holds shared state for all CLI subcommands.
type app struct {
	store store.Snapshot
}

// newApp opens the snapshot database. Creates the .dosewatch/ directory if
// using the default path.
func newApp() (*app, error) {
	dbPath := envOr("DOSEWATCH_DB", defaultDB)
	if dbPath == defaultDB {
		if err := os.MkdirAll(defaultDir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create %s: %w", defaultDir, err)
		}
	}
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", dbPath, err)
	}
	return &app{store: s}, nil
}

// Close releases the database connection.
func (a *app) Close() { a.store.Close() }

// loadMeds reads the snapshot. A corrupt or unreadable snapshot degrades to
// an empty list with a warning rather than refusing to start; the next save
// rewrites the snapshot in full anyway.
func (a *app) loadMeds() []model.Medication {
	meds, err := a.store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dw: warning: cannot read snapshot, starting empty: %v\n", err)
		return nil
	}
	return meds
}

// notifier builds the push notifier from the environment, falling back to a
// no-op when Pushover credentials are absent.
func notifier() notify.Notifier {
	token := os.Getenv("PUSHOVER_API_TOKEN")
	userKey := os.Getenv("PUSHOVER_USER_KEY")
	if token == "" || userKey == "" {
		return notify.Noop{}
	}
	return notify.NewPushover(token, userKey)
}

// findMedication resolves a user-supplied key against the record list: a
// record id prefix first, then a case-insensitive name match. Returns the
// index in meds, or an error when nothing (or more than one record) matches.
func findMedication(meds []model.Medication, key string) (int, error) {
	if key == "" {
		return -1, fmt.Errorf("no medication given")
	}

	lower := strings.ToLower(key)
	var matches []int
	for i, m := range meds {
		if strings.HasPrefix(m.ID.String(), lower) || strings.EqualFold(m.Name, key) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return -1, fmt.Errorf("no medication matches %q", key)
	case 1:
		return matches[0], nil
	}
	return -1, fmt.Errorf("%q is ambiguous: matches %d medications, use the id", key, len(matches))
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func shortID(m model.Medication) string {
	return m.ID.String()[:8]
}
