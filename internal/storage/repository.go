package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/cloudcontrol/internal/checkin"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/logger"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/phase"
	"github.com/julianstephens/cloudcontrol/internal/validation"
)

// Repository exposes typed access to the persisted collections. Every mutation reads
// the whole collection, changes it, and writes it back. Nothing serializes two
// writers, so concurrent mutations of the same key lose updates.
type Repository struct {
	backend   Backend
	now       func() time.Time
	newID     func() string
	validator *validation.Validator
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator replaces the random UUID generator used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

func NewRepository(backend Backend, opts ...Option) *Repository {
	r := &Repository{
		backend:   backend,
		now:       time.Now,
		newID:     uuid.NewString,
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the repository clock's current time.
func (r *Repository) Now() time.Time {
	return r.now()
}

// read decodes key into out. A missing or malformed value leaves out untouched and
// reports false; only backend failures are returned as errors.
func (r *Repository) read(key string, out any) (bool, error) {
	raw, ok, err := r.backend.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("Ignoring malformed stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (r *Repository) write(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.backend.Set(key, raw); err != nil {
		return err
	}
	logger.Debug("Stored value", "key", key, "bytes", len(raw))
	return nil
}

// GetLogs returns every log entry in insertion order.
func (r *Repository) GetLogs() ([]models.LogEntry, error) {
	logs := []models.LogEntry{}
	if ok, err := r.read(constants.KeyLogs, &logs); err != nil || !ok {
		return []models.LogEntry{}, err
	}
	return logs, nil
}

// AddLog assigns an ID and timestamp to entry when they are empty and appends it to
// the log. Callers validate user input first.
func (r *Repository) AddLog(entry models.LogEntry) (models.LogEntry, error) {
	if entry.ID == "" {
		entry.ID = r.newID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now()
	}
	logs, err := r.GetLogs()
	if err != nil {
		return models.LogEntry{}, err
	}
	if err := r.write(constants.KeyLogs, append(logs, entry)); err != nil {
		return models.LogEntry{}, err
	}
	logger.Info("Logged entry", "type", entry.Type, "location", entry.Location)
	return entry, nil
}

// GetPurchases returns every purchase in insertion order.
func (r *Repository) GetPurchases() ([]models.Purchase, error) {
	purchases := []models.Purchase{}
	if ok, err := r.read(constants.KeyPurchases, &purchases); err != nil || !ok {
		return []models.Purchase{}, err
	}
	return purchases, nil
}

// AddPurchase records money spent now.
func (r *Repository) AddPurchase(amount float64) (models.Purchase, error) {
	p := models.Purchase{ID: r.newID(), Amount: amount, Timestamp: r.now()}
	purchases, err := r.GetPurchases()
	if err != nil {
		return models.Purchase{}, err
	}
	if err := r.write(constants.KeyPurchases, append(purchases, p)); err != nil {
		return models.Purchase{}, err
	}
	return p, nil
}

// GetPhaseData returns the stored phase progress, or a fresh program starting now.
func (r *Repository) GetPhaseData() (models.PhaseData, error) {
	var data models.PhaseData
	ok, err := r.read(constants.KeyPhase, &data)
	if err != nil {
		return models.PhaseData{}, err
	}
	if !ok || data.CurrentPhase < constants.FirstPhase {
		return models.DefaultPhaseData(r.now()), nil
	}
	if data.PhaseStartDates == nil {
		data.PhaseStartDates = map[int]time.Time{}
	}
	if data.CompletedPhases == nil {
		data.CompletedPhases = []int{}
	}
	return data, nil
}

// StartPhase starts the clock on the current phase. It reports false, and writes
// nothing, when the phase was already started.
func (r *Repository) StartPhase() (models.PhaseData, bool, error) {
	data, err := r.GetPhaseData()
	if err != nil {
		return models.PhaseData{}, false, err
	}
	next, changed := phase.Start(data, r.now())
	if !changed {
		return next, false, nil
	}
	if err := r.write(constants.KeyPhase, next); err != nil {
		return models.PhaseData{}, false, err
	}
	logger.Info("Phase started", "phase", next.CurrentPhase)
	return next, true, nil
}

// AdvancePhase completes the current phase. It reports false, and writes nothing, at
// the final phase. Eligibility is not checked here.
func (r *Repository) AdvancePhase() (models.PhaseData, bool, error) {
	data, err := r.GetPhaseData()
	if err != nil {
		return models.PhaseData{}, false, err
	}
	next, changed := phase.Advance(data, r.now())
	if !changed {
		return next, false, nil
	}
	if err := r.write(constants.KeyPhase, next); err != nil {
		return models.PhaseData{}, false, err
	}
	logger.Info("Phase completed", "completed", data.CurrentPhase, "current", next.CurrentPhase)
	return next, true, nil
}

// GetSettings returns the stored settings with defaults filled in.
func (r *Repository) GetSettings() (models.Settings, error) {
	raw := map[string]json.RawMessage{}
	ok, err := r.read(constants.KeySettings, &raw)
	if err != nil {
		return models.Settings{}, err
	}
	if !ok {
		return models.DefaultSettings(), nil
	}
	settings, err := models.MapToSettings(raw)
	if err != nil {
		logger.Warn("Ignoring malformed stored settings", "error", err)
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// UpdateSettings shallowly merges partial, keyed by the persisted field names, into
// the stored settings.
func (r *Repository) UpdateSettings(partial map[string]any) (models.Settings, error) {
	current, err := r.GetSettings()
	if err != nil {
		return models.Settings{}, err
	}
	merged, err := models.MergeSettings(current, partial)
	if err != nil {
		return models.Settings{}, err
	}
	if err := r.write(constants.KeySettings, merged); err != nil {
		return models.Settings{}, err
	}
	return merged, nil
}

// GetCheckins returns every check-in in insertion order.
func (r *Repository) GetCheckins() ([]models.CheckIn, error) {
	checkins := []models.CheckIn{}
	if ok, err := r.read(constants.KeyCheckins, &checkins); err != nil || !ok {
		return []models.CheckIn{}, err
	}
	return checkins, nil
}

// AddCheckin records today's answer. When today already has a check-in it is
// returned unchanged with false.
func (r *Repository) AddCheckin(stuckToRules bool) (models.CheckIn, bool, error) {
	now := r.now()
	checkins, err := r.GetCheckins()
	if err != nil {
		return models.CheckIn{}, false, err
	}
	next, added := checkin.Add(checkins, stuckToRules, now)
	if !added {
		return *checkin.Today(checkins, now), false, nil
	}
	if err := r.write(constants.KeyCheckins, next); err != nil {
		return models.CheckIn{}, false, err
	}
	return next[len(next)-1], true, nil
}

// GetTodayCheckin returns today's check-in, or nil.
func (r *Repository) GetTodayCheckin() (*models.CheckIn, error) {
	checkins, err := r.GetCheckins()
	if err != nil {
		return nil, err
	}
	return checkin.Today(checkins, r.now()), nil
}

// EnsureDefaults persists the default phase data and settings when absent, so the
// phase 1 unlock date is fixed at initialization.
func (r *Repository) EnsureDefaults() error {
	if _, ok, err := r.backend.Get(constants.KeyPhase); err != nil {
		return err
	} else if !ok {
		if err := r.write(constants.KeyPhase, models.DefaultPhaseData(r.now())); err != nil {
			return err
		}
	}
	if _, ok, err := r.backend.Get(constants.KeySettings); err != nil {
		return err
	} else if !ok {
		if err := r.write(constants.KeySettings, models.DefaultSettings()); err != nil {
			return err
		}
	}
	return nil
}

// ResetAll removes every persisted collection at once.
func (r *Repository) ResetAll() error {
	if err := r.backend.Clear(constants.KeysForReset...); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	logger.Warn("All data reset")
	return nil
}

// Snapshot reads every collection for auditing or export.
func (r *Repository) Snapshot() (validation.Data, error) {
	var (
		d   validation.Data
		err error
	)
	if d.Logs, err = r.GetLogs(); err != nil {
		return d, err
	}
	if d.Purchases, err = r.GetPurchases(); err != nil {
		return d, err
	}
	if d.Checkins, err = r.GetCheckins(); err != nil {
		return d, err
	}
	if d.Phase, err = r.GetPhaseData(); err != nil {
		return d, err
	}
	if d.Settings, err = r.GetSettings(); err != nil {
		return d, err
	}
	return d, nil
}

// Validate audits the stored data.
func (r *Repository) Validate() (validation.ValidationResult, error) {
	d, err := r.Snapshot()
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return r.validator.ValidateData(d), nil
}
