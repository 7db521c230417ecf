package alert

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lpmorais/dosewatch/pkg/ledger"
	"github.com/lpmorais/dosewatch/pkg/model"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.Local)
}

func scheduledMed(name string, due time.Time) model.Medication {
	return model.Medication{
		ID:             uuid.New(),
		Name:           name,
		Posology:       model.Continuous,
		DoseAmount:     1,
		FrequencyHours: 12,
		ScheduleTimes:  []string{"08:00", "20:00"},
		NextDoseAt:     &due,
	}
}

// --- Sweep ---

func TestSweep_FiresOverdueOnce(t *testing.T) {
	due := at(8, 0)
	meds := []model.Medication{scheduledMed("Amoxicillin", due)}

	updated, fired := Sweep(meds, at(8, 0))
	if len(fired) != 1 || fired[0].Name != "Amoxicillin" {
		t.Fatalf("first sweep: got %d fired, want 1", len(fired))
	}
	if !updated[0].Notified {
		t.Fatal("fired record must have Notified set")
	}

	// Same due time, later sweep: already notified, stays silent.
	_, fired = Sweep(updated, at(8, 1))
	if len(fired) != 0 {
		t.Fatalf("second sweep: got %d fired, want 0", len(fired))
	}
}

func TestSweep_FutureDoseStaysSilent(t *testing.T) {
	meds := []model.Medication{scheduledMed("Amoxicillin", at(20, 0))}
	updated, fired := Sweep(meds, at(8, 0))
	if len(fired) != 0 || updated[0].Notified {
		t.Fatalf("future dose fired: fired=%d notified=%v", len(fired), updated[0].Notified)
	}
}

func TestSweep_DueExactlyNowFires(t *testing.T) {
	due := at(8, 0)
	meds := []model.Medication{scheduledMed("Amoxicillin", due)}
	_, fired := Sweep(meds, due)
	if len(fired) != 1 {
		t.Fatalf("dose due exactly now must fire, got %d", len(fired))
	}
}

func TestSweep_SkipsAsNeededAndFinished(t *testing.T) {
	due := at(7, 0)
	asNeeded := model.Medication{ID: uuid.New(), Name: "Ibuprofen", Posology: model.AsNeeded, DoseAmount: 1}
	finished := scheduledMed("Amoxicillin", due)
	finished.Finished = true

	_, fired := Sweep([]model.Medication{asNeeded, finished}, at(8, 0))
	if len(fired) != 0 {
		t.Fatalf("as-needed/finished records fired: got %d", len(fired))
	}
}

func TestSweep_DoesNotMutateInput(t *testing.T) {
	meds := []model.Medication{scheduledMed("Amoxicillin", at(7, 0))}
	Sweep(meds, at(8, 0))
	if meds[0].Notified {
		t.Fatal("Sweep must not mutate its input")
	}
}

func TestSweep_SnoozeRearmsTheAlarm(t *testing.T) {
	due := at(8, 0)
	meds := []model.Medication{scheduledMed("Amoxicillin", due)}

	updated, fired := Sweep(meds, at(8, 0))
	if len(fired) != 1 {
		t.Fatal("expected initial fire")
	}

	// User snoozes for 10 minutes before the next poll tick.
	snoozed, ok := ledger.Snooze(updated[0], 10, at(8, 0))
	if !ok {
		t.Fatal("Snooze should apply")
	}
	updated[0] = snoozed

	// Before the snooze expires: silent.
	_, fired = Sweep(updated, at(8, 5))
	if len(fired) != 0 {
		t.Fatalf("sweep during snooze fired %d", len(fired))
	}

	// After: fires again.
	updated, fired = Sweep(updated, at(8, 10))
	if len(fired) != 1 || !updated[0].Notified {
		t.Fatalf("sweep after snooze: fired=%d notified=%v", len(fired), updated[0].Notified)
	}
}

// --- Late projection ---

func TestLate(t *testing.T) {
	due := at(8, 0)
	m := scheduledMed("Amoxicillin", due)

	if Late(m, at(7, 59)) {
		t.Fatal("not yet due must not be late")
	}
	if !Late(m, at(8, 0)) {
		t.Fatal("due exactly now is late")
	}
	if !Late(m, at(9, 0)) {
		t.Fatal("overdue must be late")
	}

	m.Finished = true
	if Late(m, at(9, 0)) {
		t.Fatal("finished record is never late")
	}

	asNeeded := model.Medication{Posology: model.AsNeeded}
	if Late(asNeeded, at(9, 0)) {
		t.Fatal("as-needed record is never late")
	}
}

func TestPending(t *testing.T) {
	meds := []model.Medication{
		scheduledMed("late", at(7, 0)),
		scheduledMed("future", at(20, 0)),
	}
	got := Pending(meds, at(8, 0))
	if len(got) != 1 || got[0].Name != "late" {
		t.Fatalf("Pending: got %d records, want just the late one", len(got))
	}
}

// --- Low-stock projection ---

func stockMed(stock, doseAmount, freqHours float64) model.Medication {
	return model.Medication{
		Posology:       model.Continuous,
		DoseAmount:     doseAmount,
		FrequencyHours: freqHours,
		Stock:          &stock,
	}
}

func TestStockDaysLeft(t *testing.T) {
	tests := []struct {
		name     string
		med      model.Medication
		wantDays int
		wantOK   bool
	}{
		{"three days exactly", stockMed(3, 1, 24), 3, true},
		{"fractional rounds up", stockMed(2.5, 1, 24), 3, true},
		{"half tablets twice daily", stockMed(1, 0.5, 12), 1, true},
		{"plenty left", stockMed(30, 1, 24), 0, false},
		{"just above threshold", stockMed(3.1, 1, 24), 0, false},
		{"empty supply", stockMed(0, 1, 24), 0, false},
		{"overdrawn supply", stockMed(-2, 1, 24), 0, false},
		{"no frequency", stockMed(3, 1, 0), 0, false},
		{"zero dose amount", stockMed(3, 0, 24), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := StockDaysLeft(tt.med)
			if ok != tt.wantOK || days != tt.wantDays {
				t.Fatalf("StockDaysLeft = (%d, %v), want (%d, %v)", days, ok, tt.wantDays, tt.wantOK)
			}
		})
	}
}

func TestStockDaysLeft_UntrackedAndAsNeeded(t *testing.T) {
	untracked := model.Medication{Posology: model.Continuous, DoseAmount: 1, FrequencyHours: 24}
	if _, ok := StockDaysLeft(untracked); ok {
		t.Fatal("untracked stock must not warn")
	}

	asNeeded := stockMed(1, 1, 24)
	asNeeded.Posology = model.AsNeeded
	if _, ok := StockDaysLeft(asNeeded); ok {
		t.Fatal("as-needed records must not warn")
	}
}

func TestLowStock(t *testing.T) {
	low := stockMed(2, 1, 24)
	low.Name = "low"
	fine := stockMed(30, 1, 24)
	fine.Name = "fine"

	got := LowStock([]model.Medication{fine, low})
	if len(got) != 1 || got[0].Name != "low" {
		t.Fatalf("LowStock: got %d records, want just the low one", len(got))
	}
}
