package wizard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pacesetter/internal"
	"pacesetter/internal/config"
	"pacesetter/internal/pipeline"
	"pacesetter/internal/storage"
)

// Step indices of the wizard, in order.
const (
	StepIntake = iota
	StepCompleteness
	StepKPIComputation
	StepExpertReview
	StepExport
)

var stepNames = []string{"Intake", "Completeness", "KPIComputation", "ExpertReview", "Export"}

func StepName(index int) string {
	if index < 0 || index >= len(stepNames) {
		return "unknown"
	}
	return stepNames[index]
}

// Wizard holds all working state and sequences the pipeline through the
// five gated steps. It is owned by a single logical thread: every mutation
// notifies subscribers synchronously before returning, and notifications
// are queued so a re-entrant write during notify cannot interleave.
type Wizard struct {
	cfg config.Config
	db  *storage.DB

	stepIndex     int
	grid          internal.GridFactor
	lifetimeYears map[internal.Category]float64
	thresholds    internal.Thresholds

	captured       map[string][]internal.Row
	capturedOrder  []string
	headersByKey   map[string][]string
	headerRowByKey map[string]int

	mappingApplied bool
	records        []internal.MappedRecord
	missing        []internal.CanonicalField
	quality        internal.DataQualitySummary

	kpisComputed bool
	kpis         []internal.KPIResult

	snapshot *internal.Snapshot

	currentError string

	subscribers []subscriber
	nextSubID   int
	pending     int
	notifying   bool
}

type subscriber struct {
	id int
	fn func()
}

// New builds a wizard, restoring the session-persisted subset (step index,
// grid factor, lifetime table, thresholds) if present. Everything else
// starts empty.
func New(cfg config.Config, db *storage.DB) (*Wizard, error) {
	w := &Wizard{
		cfg:            cfg,
		db:             db,
		grid:           cfg.Grid(),
		lifetimeYears:  cfg.LifetimeYears,
		thresholds:     cfg.Thresholds(),
		captured:       map[string][]internal.Row{},
		headersByKey:   map[string][]string{},
		headerRowByKey: map[string]int{},
	}

	session, err := db.LoadSession()
	if err != nil {
		return nil, err
	}
	if session != nil {
		w.stepIndex = session.StepIndex
		w.grid = session.Grid
		if session.LifetimeYears != nil {
			w.lifetimeYears = session.LifetimeYears
		}
		w.thresholds = session.Thresholds
	}

	return w, nil
}

// Subscribe registers a change listener and returns its remover.
// Listeners must not mutate the wizard from inside a notification.
func (w *Wizard) Subscribe(fn func()) func() {
	w.nextSubID++
	id := w.nextSubID
	w.subscribers = append(w.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range w.subscribers {
			if s.id == id {
				w.subscribers = append(w.subscribers[:i], w.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (w *Wizard) notify() {
	w.pending++
	if w.notifying {
		return
	}
	w.notifying = true
	for w.pending > 0 {
		w.pending--
		for _, s := range w.subscribers {
			s.fn()
		}
	}
	w.notifying = false
}

func (w *Wizard) persistSession() {
	if err := w.db.SaveSession(storage.Session{
		StepIndex:     w.stepIndex,
		Grid:          w.grid,
		LifetimeYears: w.lifetimeYears,
		Thresholds:    w.thresholds,
	}); err != nil {
		slog.Error("session save failed", "err", err)
	}
}

// Frontier is the highest step index currently reachable: each gate must
// hold for every step below it.
func (w *Wizard) Frontier() int {
	frontier := StepIntake
	if len(w.capturedOrder) == 0 {
		return frontier
	}
	frontier = StepCompleteness
	if !w.mappingApplied || w.quality.Status == internal.QualityRed {
		return frontier
	}
	frontier = StepKPIComputation
	if !w.kpisComputed {
		return frontier
	}
	frontier = StepExpertReview
	if w.snapshot == nil {
		return frontier
	}
	return StepExport
}

func (w *Wizard) StepIndex() int { return w.stepIndex }

// GoTo navigates to a step. Backward navigation is always permitted;
// forward navigation beyond the frontier is rejected silently, with no
// state change and no error.
func (w *Wizard) GoTo(index int) {
	if index < 0 || index >= len(stepNames) || index == w.stepIndex {
		return
	}
	if index > w.stepIndex && index > w.Frontier() {
		return
	}
	w.stepIndex = index
	w.persistSession()
	w.notify()
}

// IngestFile decodes one uploaded file, accumulating sheet rows into
// append-only buffers keyed file::sheet. The parse is drained to its
// terminal event before returning, keeping multi-file ingestion strictly
// sequential. A decode failure surfaces in the current-error slot and
// leaves other files' captures untouched.
func (w *Wizard) IngestFile(blob []byte, fileName string) error {
	return w.ingest(pipeline.Parse(blob, fileName, w.cfg.ParseChunkRows), fileName)
}

// IngestDummy captures the synthesized demo dataset.
func (w *Wizard) IngestDummy(name string) error {
	return w.ingest(pipeline.ParseDummy(name), name)
}

func (w *Wizard) ingest(events <-chan pipeline.Event, fileName string) error {
	sheets, rows := 0, 0
	var parseErr error

	for ev := range events {
		switch ev := ev.(type) {
		case pipeline.MetaEvent:
			sheets = len(ev.SheetNames)
		case pipeline.ChunkEvent:
			w.capture(ev)
			rows += len(ev.Rows)
		case pipeline.ErrorEvent:
			parseErr = fmt.Errorf("%s", ev.Message)
		case pipeline.DoneEvent:
		}
	}

	traceID := uuid.NewString()
	if parseErr != nil {
		w.currentError = parseErr.Error()
		_ = w.db.InsertParseRun(traceID, fileName, "error", sheets, rows, parseErr.Error())
		slog.Error("parse failed", "file", fileName, "err", parseErr)
		w.notify()
		return parseErr
	}

	_ = w.db.InsertParseRun(traceID, fileName, "done", sheets, rows, "")
	slog.Info("parse complete", "file", fileName, "sheets", sheets, "rows", rows)
	return nil
}

func (w *Wizard) capture(chunk pipeline.ChunkEvent) {
	key := chunk.FileName + "::" + chunk.SheetName
	if _, seen := w.captured[key]; !seen {
		w.capturedOrder = append(w.capturedOrder, key)
		w.headersByKey[key] = chunk.Headers
		w.headerRowByKey[key] = chunk.HeaderRowIndex
	}
	w.captured[key] = append(w.captured[key], chunk.Rows...)

	if w.stepIndex == StepIntake {
		w.stepIndex = StepCompleteness
		w.persistSession()
	}
	w.notify()
}

// DetectedDatasets lists the captured file::sheet keys in arrival order.
func (w *Wizard) DetectedDatasets() []string {
	out := make([]string, len(w.capturedOrder))
	copy(out, w.capturedOrder)
	return out
}

func (w *Wizard) CapturedRows(key string) []internal.Row { return w.captured[key] }

func (w *Wizard) Headers(key string) []string { return w.headersByKey[key] }

// Suggestions proposes a mapping from the headers of the first captured
// dataset.
func (w *Wizard) Suggestions() []internal.MappingSuggestion {
	if len(w.capturedOrder) == 0 {
		return nil
	}
	return pipeline.Suggest(w.headersByKey[w.capturedOrder[0]])
}

// ApplyMapping resolves the mapping over all captured rows in capture
// order, replacing the record set wholesale, and re-validates. Downstream
// KPIs are invalidated.
func (w *Wizard) ApplyMapping(mapping internal.Mapping) (missing []internal.CanonicalField) {
	rows := []internal.Row{}
	for _, key := range w.capturedOrder {
		rows = append(rows, w.captured[key]...)
	}

	w.records, w.missing = pipeline.Apply(rows, mapping)
	w.quality = pipeline.Validate(w.records)
	w.mappingApplied = true
	w.kpisComputed = false
	w.kpis = nil
	w.notify()
	return w.missing
}

func (w *Wizard) Records() []internal.MappedRecord     { return w.records }
func (w *Wizard) Missing() []internal.CanonicalField   { return w.missing }
func (w *Wizard) Quality() internal.DataQualitySummary { return w.quality }

func (w *Wizard) SetGridFactor(grid internal.GridFactor) {
	w.grid = grid
	w.persistSession()
	w.notify()
}

func (w *Wizard) SetLifetimeYears(years map[internal.Category]float64) {
	w.lifetimeYears = years
	w.persistSession()
	w.notify()
}

func (w *Wizard) SetThresholds(t internal.Thresholds) {
	w.thresholds = t
	w.persistSession()
	w.notify()
}

func (w *Wizard) GridFactor() internal.GridFactor { return w.grid }
func (w *Wizard) Thresholds() internal.Thresholds { return w.thresholds }

// ComputeKPIs runs the KPI engine over the current record set.
func (w *Wizard) ComputeKPIs() error {
	if !w.mappingApplied {
		return fmt.Errorf("no mapping applied")
	}
	w.kpis = pipeline.ComputeKPIs(w.records, w.grid, w.lifetimeYears, w.thresholds)
	w.kpisComputed = true
	w.notify()
	return nil
}

// KPIs exposes the live KPI list.
func (w *Wizard) KPIs() []internal.KPIResult { return w.kpis }

// Lock freezes the current KPI list and thresholds into a new snapshot,
// replacing any prior one. The snapshot is a value copy: later mutation
// of live state never alters it.
func (w *Wizard) Lock() (internal.Snapshot, error) {
	if !w.kpisComputed {
		return internal.Snapshot{}, fmt.Errorf("no KPIs computed")
	}

	kpis := make([]internal.KPIResult, len(w.kpis))
	copy(kpis, w.kpis)

	sum := decimal.Zero
	for _, kpi := range kpis {
		sum = sum.Add(decimal.NewFromFloat(kpi.TotalCO2e))
	}
	sumTotal, _ := sum.Round(2).Float64()

	snap := internal.Snapshot{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		KPIs:       kpis,
		Totals:     internal.SnapshotTotals{Count: len(kpis), SumTotalCO2e: sumTotal},
		Thresholds: w.thresholds,
	}
	w.snapshot = &snap
	w.notify()
	return cloneSnapshot(snap), nil
}

// Snapshot returns a copy of the current locked snapshot, or nil.
func (w *Wizard) Snapshot() *internal.Snapshot {
	if w.snapshot == nil {
		return nil
	}
	snap := cloneSnapshot(*w.snapshot)
	return &snap
}

// CurrentError returns the single current error message; a new error
// overwrites any prior one.
func (w *Wizard) CurrentError() string { return w.currentError }

func (w *Wizard) ClearError() {
	if w.currentError == "" {
		return
	}
	w.currentError = ""
	w.notify()
}

func cloneSnapshot(snap internal.Snapshot) internal.Snapshot {
	kpis := make([]internal.KPIResult, len(snap.KPIs))
	copy(kpis, snap.KPIs)
	snap.KPIs = kpis
	return snap
}
