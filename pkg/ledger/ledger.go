// Package ledger holds the pure state transitions for medication records:
// registration/edit, dose acknowledgment, and snooze. Every transition is a
// total function (record, context) → record' over validated input; malformed
// registrations are rejected before a record is ever constructed, so the
// transitions themselves never fail.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lpmorais/dosewatch/pkg/model"
	"github.com/lpmorais/dosewatch/pkg/schedule"
)

// Cadence is how often a course repeats, expressed as words in the
// registration form and mapped to hour multipliers here.
type Cadence string

const (
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Monthly Cadence = "monthly"
	Yearly  Cadence = "yearly"
)

// Hour multipliers for each cadence.
const (
	hoursPerDay   = 24
	hoursPerWeek  = 168
	hoursPerMonth = 720
	hoursPerYear  = 8760
)

// Hours returns the cadence's length in hours, or an error for an unknown
// cadence word.
func (c Cadence) Hours() (float64, error) {
	switch c {
	case Daily, "":
		return hoursPerDay, nil
	case Weekly:
		return hoursPerWeek, nil
	case Monthly:
		return hoursPerMonth, nil
	case Yearly:
		return hoursPerYear, nil
	}
	return 0, fmt.Errorf("unknown cadence %q", string(c))
}

// Validation errors returned by Build.
var (
	ErrNameRequired      = errors.New("medication name is required")
	ErrFrequencyRequired = errors.New("a dose interval is required unless the medication is as-needed")
	ErrInvalidPosology   = errors.New("posology must be continuous, course, or asneeded")
	ErrInvalidDoseAmount = errors.New("dose amount must be positive")
)

// Registration is the normalized form input for creating or editing a
// medication. The CLI collects raw flag values and hands this struct to
// Build; nothing here has been validated yet.
type Registration struct {
	Name        string
	DosageLabel string
	Notes       string

	Posology   model.Posology
	DoseAmount float64 // defaults to 1 when zero

	// IntervalHours is the interval between doses within one cadence period
	// (e.g. 8 for "every 8 hours"). For cadences longer than daily it is
	// ignored and the cadence length itself becomes the frequency.
	IntervalHours float64
	Cadence       Cadence

	// DurationCount is the course length in cadence units (e.g. 7 with a
	// daily cadence = a 7-day course). Zero means open-ended.
	DurationCount int

	// StartTime seeds the intraday grid ("08:00"). Ignored when explicit
	// Times are given.
	StartTime string
	Times     []string

	Stock *float64
}

// Build constructs a medication record from a registration, or rebuilds one
// when editing (prev non-nil). Edits preserve identity, creation time, and
// treatment progress: TakenCount is never reset by an edit, and Finished is
// recomputed from the preserved count against the new total.
func Build(reg Registration, prev *model.Medication, now time.Time) (model.Medication, error) {
	if reg.Name == "" {
		return model.Medication{}, ErrNameRequired
	}
	if !reg.Posology.Valid() {
		return model.Medication{}, ErrInvalidPosology
	}
	if reg.DoseAmount < 0 {
		return model.Medication{}, ErrInvalidDoseAmount
	}

	cadenceHours, err := reg.Cadence.Hours()
	if err != nil {
		return model.Medication{}, err
	}

	// Map the cadence to the effective frequency: intraday interval for
	// daily dosing, the cadence length itself for anything longer.
	freq := reg.IntervalHours
	if cadenceHours > hoursPerDay {
		freq = cadenceHours
	}
	if reg.Posology != model.AsNeeded && freq <= 0 {
		return model.Medication{}, ErrFrequencyRequired
	}

	doseAmount := reg.DoseAmount
	if doseAmount == 0 {
		doseAmount = 1
	}

	m := model.Medication{
		ID:          uuid.New(),
		Name:        reg.Name,
		DosageLabel: reg.DosageLabel,
		Notes:       reg.Notes,
		Posology:    reg.Posology,
		DoseAmount:  doseAmount,
		Stock:       reg.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if prev != nil {
		m.ID = prev.ID
		m.CreatedAt = prev.CreatedAt
		m.TakenCount = prev.TakenCount
		m.LastTakenAt = prev.LastTakenAt
	}

	if reg.Posology == model.AsNeeded {
		// As-needed records carry no schedule at all.
		return m, nil
	}

	m.FrequencyHours = freq
	if freq <= hoursPerDay {
		if len(reg.Times) > 0 {
			m.ScheduleTimes = schedule.Normalize(reg.Times)
		} else {
			m.ScheduleTimes = schedule.DailyGrid(reg.StartTime, freq)
		}
	}

	// Only a fixed course has a dose total; continuous records stay
	// open-ended no matter what duration the form carried.
	if reg.Posology == model.Course && reg.DurationCount > 0 {
		total := int(math.Ceil(float64(reg.DurationCount) * cadenceHours / freq))
		if total > 0 {
			m.TotalDoses = &total
		}
	}
	m.Finished = m.TotalDoses != nil && m.TakenCount >= *m.TotalDoses

	next := schedule.NextDose(m.ScheduleTimes, m.FrequencyHours, now)
	m.NextDoseAt = &next
	return m, nil
}

// Acknowledge records that a dose was taken: stock is decremented by the
// dose amount (and may go negative — an overdue restock the list view
// surfaces, not an error), the due time advances, the taken count grows, and
// the alarm guard resets. For cadences longer than a day the due time
// advances by pure offset from now; otherwise the intraday grid resolves it.
//
// Finished and as-needed records are not acknowledgeable; the record is
// returned unchanged with ok=false so double-invocation from a UI action and
// an active alarm stays a no-op.
func Acknowledge(m model.Medication, now time.Time) (model.Medication, bool) {
	if !m.Scheduled() {
		return m, false
	}

	if m.Stock != nil {
		s := *m.Stock - m.DoseAmount
		m.Stock = &s
	}

	var next time.Time
	if m.FrequencyHours > hoursPerDay {
		next = now.Add(time.Duration(m.FrequencyHours * float64(time.Hour)))
	} else {
		next = schedule.NextDose(m.ScheduleTimes, m.FrequencyHours, now)
	}
	m.NextDoseAt = &next

	m.TakenCount++
	m.Finished = m.TotalDoses != nil && m.TakenCount >= *m.TotalDoses
	m.Notified = false
	taken := now
	m.LastTakenAt = &taken
	m.UpdatedAt = now
	return m, true
}

// Snooze defers the due time to now + minutes and resets the alarm guard,
// without touching stock or the taken count. Valid only for records that can
// alarm at all; otherwise a no-op with ok=false.
func Snooze(m model.Medication, minutes int, now time.Time) (model.Medication, bool) {
	if !m.Scheduled() {
		return m, false
	}
	next := now.Add(time.Duration(minutes) * time.Minute)
	m.NextDoseAt = &next
	m.Notified = false
	m.UpdatedAt = now
	return m, true
}
