// Package model defines the core domain types for dosewatch.
//
// A Medication is an immutable record value: every state transition
// (acknowledge, snooze, edit) produces a new value rather than mutating a
// shared one, and the full record list is the only persisted state. The
// record carries both the schedule (clock-time grid or hour interval) and
// the alarm guard (Notified), which must always change together — the
// Notified flag is what keeps the poll loop from re-firing an alarm whose
// due time was just advanced.
package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Posology classifies a medication's dosing regimen.
type Posology string

const (
	// Continuous medications repeat indefinitely on their schedule.
	Continuous Posology = "continuous"
	// Course medications run for a fixed number of doses, then finish.
	Course Posology = "course"
	// AsNeeded medications have no schedule and never alarm.
	AsNeeded Posology = "asneeded"
)

// Valid reports whether p is one of the three known posologies.
func (p Posology) Valid() bool {
	switch p {
	case Continuous, Course, AsNeeded:
		return true
	}
	return false
}

// Medication is one registered medication with its dosing schedule and
// progress. Pointer fields are optional: nil Stock means stock is not
// tracked, nil NextDoseAt only occurs for as-needed records, nil TotalDoses
// means the course is open-ended.
type Medication struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DosageLabel string    `json:"dosage_label,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	Posology   Posology `json:"posology"`
	DoseAmount float64  `json:"dose_amount"`

	// FrequencyHours is the interval between doses. Values above 24 encode
	// weekly/monthly/yearly cadences in hour units (168, 720, 8760).
	FrequencyHours float64 `json:"frequency_hours,omitempty"`

	// ScheduleTimes is the intraday HH:MM grid, sorted ascending and
	// deduplicated. Empty for as-needed records and for cadences longer
	// than a day, which advance by pure offset instead.
	ScheduleTimes []string `json:"schedule_times,omitempty"`

	// Stock may go negative after acknowledgments; a negative value means
	// the user kept taking doses past the tracked supply.
	Stock *float64 `json:"stock,omitempty"`

	NextDoseAt *time.Time `json:"next_dose_at,omitempty"`

	// Notified is true once the current NextDoseAt has fired an alarm.
	// Every advance of NextDoseAt resets it to false.
	Notified bool `json:"notified"`

	TakenCount int  `json:"taken_count"`
	TotalDoses *int `json:"total_doses,omitempty"`

	// Finished is derived from TakenCount and TotalDoses and is monotonic:
	// once true, the record no longer schedules or alarms.
	Finished bool `json:"finished"`

	LastTakenAt *time.Time `json:"last_taken_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Scheduled reports whether the record participates in due-time scheduling
// at all: as-needed and finished records never do.
func (m Medication) Scheduled() bool {
	return m.Posology != AsNeeded && !m.Finished
}

// SortForDisplay orders records the way the list view presents them:
// scheduled records first by ascending next dose, then as-needed records,
// then finished records. The sort is stable so records with equal rank keep
// their registration order.
func SortForDisplay(meds []Medication) {
	sort.SliceStable(meds, func(i, j int) bool {
		ri, rj := displayRank(meds[i]), displayRank(meds[j])
		if ri != rj {
			return ri < rj
		}
		return earlier(meds[i], meds[j])
	})
}

func displayRank(m Medication) int {
	switch {
	case m.Finished:
		return 2
	case m.Posology == AsNeeded:
		return 1
	default:
		return 0
	}
}

func earlier(a, b Medication) bool {
	if a.NextDoseAt == nil || b.NextDoseAt == nil {
		return false
	}
	return a.NextDoseAt.Before(*b.NextDoseAt)
}
