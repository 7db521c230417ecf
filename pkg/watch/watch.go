// Package watch runs the alarm poll loop: on a fixed cadence it loads the
// snapshot, sweeps for due doses, persists the flipped Notified flags, and
// dispatches the alarm presentation (terminal panel plus best-effort push).
//
// The loop owns no scheduling logic of its own: it only supplies wall-clock
// time to pkg/alert and applies the resulting transitions. The clock is
// injected (clockwork) so tests drive the loop without real time passing.
package watch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/lpmorais/dosewatch/pkg/alert"
	"github.com/lpmorais/dosewatch/pkg/model"
	"github.com/lpmorais/dosewatch/pkg/notify"
	"github.com/lpmorais/dosewatch/pkg/store"
)

// DefaultInterval is the reference poll cadence.
const DefaultInterval = 5 * time.Second

// Watcher polls the snapshot for due doses.
type Watcher struct {
	snapshot store.Snapshot
	notifier notify.Notifier
	clock    clockwork.Clock
	interval time.Duration
	out      io.Writer
	errOut   io.Writer
}

// New builds a Watcher. A nil notifier falls back to notify.Noop and a
// non-positive interval to DefaultInterval.
func New(snapshot store.Snapshot, notifier notify.Notifier, clk clockwork.Clock, interval time.Duration, out, errOut io.Writer) *Watcher {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		snapshot: snapshot,
		notifier: notifier,
		clock:    clk,
		interval: interval,
		out:      out,
		errOut:   errOut,
	}
}

// Run polls until the context is canceled. The first tick runs immediately
// so an already-overdue dose alarms at startup rather than one interval
// later.
func (w *Watcher) Run(ctx context.Context) error {
	sched, err := gocron.NewScheduler(gocron.WithClock(w.clock))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if err := w.Tick(); err != nil {
				fmt.Fprintf(w.errOut, "dw: watch: %v\n", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule poll job: %w", err)
	}

	sched.Start()
	<-ctx.Done()
	return sched.Shutdown()
}

// Tick performs one poll: load → sweep → persist → announce. The snapshot is
// only rewritten when at least one alarm fired, and the Notified flags are
// persisted before any presentation happens so a crash mid-announce cannot
// re-fire the same due time.
func (w *Watcher) Tick() error {
	now := w.clock.Now()

	meds, err := w.snapshot.Load()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	updated, fired := alert.Sweep(meds, now)
	if len(fired) == 0 {
		return nil
	}
	if err := w.snapshot.Replace(updated); err != nil {
		return fmt.Errorf("persist alarm state: %w", err)
	}

	for _, m := range fired {
		w.announce(m, now)
	}
	return nil
}

// announce renders the terminal alarm panel and pushes a native
// notification. The push is best-effort: a failure is logged and the alarm
// stands on the panel and the persisted state alone.
func (w *Watcher) announce(m model.Medication, now time.Time) {
	fmt.Fprint(w.out, alarmPanel(m, now))

	title := fmt.Sprintf("Time for your medication: %s", m.Name)
	body := fmt.Sprintf("Take %s now.", doseLine(m))
	if err := w.notifier.Notify(title, body); err != nil {
		fmt.Fprintf(w.errOut, "dw: watch: push notification: %v\n", err)
	}
}

// alarmPanel renders the full-width acknowledgment panel, terminal bell
// included. The short id in the hint is enough for dw take / dw snooze.
func alarmPanel(m model.Medication, now time.Time) string {
	var b strings.Builder
	shortID := m.ID.String()[:8]

	b.WriteString("\a\n")
	b.WriteString("  ================ TIME FOR YOUR MEDICATION ================\n")
	fmt.Fprintf(&b, "  %s  |  %s\n", now.Format("Mon 02 Jan 15:04"), m.Name)
	fmt.Fprintf(&b, "  dose: %s\n", doseLine(m))
	if m.Notes != "" {
		fmt.Fprintf(&b, "  note: %s\n", m.Notes)
	}
	fmt.Fprintf(&b, "  acknowledge:  dw take %s\n", shortID)
	fmt.Fprintf(&b, "  defer:        dw snooze --for 10 %s\n", shortID)
	b.WriteString("  ==========================================================\n\n")
	return b.String()
}

func doseLine(m model.Medication) string {
	dose := model.FormatDose(m.DoseAmount)
	if m.DosageLabel != "" {
		return fmt.Sprintf("%s (%s)", dose, m.DosageLabel)
	}
	return dose
}
