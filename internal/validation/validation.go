package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

// ConflictType represents the type of data integrity problem
type ConflictType string

const (
	ConflictInvalidEntry      ConflictType = "invalid_entry"
	ConflictDuplicateID       ConflictType = "duplicate_id"
	ConflictDuplicateCheckIn  ConflictType = "duplicate_checkin"
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictPhaseSequence     ConflictType = "phase_sequence"
	ConflictInvalidSettingVal ConflictType = "invalid_setting"
)

// Conflict represents one detected problem in the stored data
type Conflict struct {
	Type        ConflictType
	Description string
	IDs         []string // IDs or day keys of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks individual records and audits stored data.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a new Validator
func New() *Validator {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	// Only fails on duplicate registration, which cannot happen on a fresh instance.
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterStructValidation(logEntryRules, models.LogEntry{})

	return &Validator{validate: validate, trans: trans}
}

// logEntryRules enforces the cross-field rules of a log entry: a drag count is
// present exactly when the entry is a vape session, and the timestamp is set.
func logEntryRules(sl validator.StructLevel) {
	entry := sl.Current().Interface().(models.LogEntry)

	if entry.Timestamp.IsZero() {
		sl.ReportError(entry.Timestamp, "timestamp", "Timestamp", "required", "")
	}
	switch {
	case entry.IsSession() && entry.DragCount == nil:
		sl.ReportError(entry.DragCount, "dragCount", "DragCount", "required", "")
	case !entry.IsSession() && entry.DragCount != nil:
		sl.ReportError(entry.DragCount, "dragCount", "DragCount", "isdefault", "")
	}
}

// ValidateLogEntry checks a single log entry.
func (v *Validator) ValidateLogEntry(entry models.LogEntry) error {
	return v.translate(v.validate.Struct(entry))
}

// ValidatePurchase checks a single purchase.
func (v *Validator) ValidatePurchase(p models.Purchase) error {
	if err := v.translate(v.validate.Struct(p)); err != nil {
		return err
	}
	if p.Timestamp.IsZero() {
		return errors.New("timestamp is a required field")
	}
	return nil
}

// ValidateSettings checks user settings.
func (v *Validator) ValidateSettings(s models.Settings) error {
	if s.WeeklySpend < 0 {
		return errors.New("weeklySpend must be 0 or greater")
	}
	if err := ValidateNotificationTime(s.NotificationTime); err != nil {
		return err
	}
	for id := range s.PhaseRewards {
		if _, ok := models.GetPhase(id); !ok {
			return fmt.Errorf("phaseRewards refers to unknown phase %d", id)
		}
	}
	return nil
}

// translate flattens validator errors into one readable error.
func (v *Validator) translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(v.trans))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ValidateDragCount checks a drag count is within the allowed range.
func ValidateDragCount(n int) error {
	if n < constants.MinDragCount || n > constants.MaxDragCount {
		return fmt.Errorf("drag count must be between %d and %d, got %d", constants.MinDragCount, constants.MaxDragCount, n)
	}
	return nil
}

// ValidateLocation checks a location string names one of the known locations.
func ValidateLocation(s string) (constants.Location, error) {
	for _, loc := range constants.Locations {
		if string(loc) == s {
			return loc, nil
		}
	}
	return "", fmt.Errorf("unknown location %q (expected one of bed, coding, designated_spot, other)", s)
}

// NormalizeTrigger lower-cases and trims a free-text trigger label.
func NormalizeTrigger(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseAmount parses a purchase amount, which must be a positive number.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be greater than 0, got %v", amount)
	}
	return amount, nil
}

// ParseWeeklySpend parses what vaping used to cost per week. Zero is allowed.
func ParseWeeklySpend(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("weekly spend must be 0 or greater, got %v", amount)
	}
	return amount, nil
}

// ValidateNotificationTime checks a reminder time is in HH:MM format.
func ValidateNotificationTime(s string) error {
	if !isValidTimeFormat(s) {
		return fmt.Errorf("invalid notification time %q (expected HH:MM)", s)
	}
	return nil
}

func isValidTimeFormat(s string) bool {
	_, err := utils.ParseTime(s)
	return err == nil
}

// Data is everything the integrity audit inspects.
type Data struct {
	Logs      []models.LogEntry
	Purchases []models.Purchase
	Checkins  []models.CheckIn
	Phase     models.PhaseData
	Settings  models.Settings
}

// ValidateData audits stored data for records that could not have been written
// through the normal operations.
func (v *Validator) ValidateData(d Data) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]int)
	for _, entry := range d.Logs {
		seen[entry.ID]++
		if err := v.ValidateLogEntry(entry); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidEntry,
				Description: fmt.Sprintf("Log entry %s is invalid: %v", entry.ID, err),
				IDs:         []string{entry.ID},
			})
		}
	}
	for _, p := range d.Purchases {
		seen[p.ID]++
		if err := v.ValidatePurchase(p); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidEntry,
				Description: fmt.Sprintf("Purchase %s is invalid: %v", p.ID, err),
				IDs:         []string{p.ID},
			})
		}
	}
	for id, n := range seen {
		if n > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("ID %q is used by %d records", id, n),
				IDs:         []string{id},
			})
		}
	}

	days := make(map[string]int)
	for _, c := range d.Checkins {
		days[c.Date]++
		if _, err := utils.ParseDayKey(c.Date, time.Local); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Check-in has invalid date %q", c.Date),
				IDs:         []string{c.Date},
			})
		}
	}
	for day, n := range days {
		if n > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateCheckIn,
				Description: fmt.Sprintf("Day %s has %d check-ins", day, n),
				IDs:         []string{day},
			})
		}
	}

	if c, ok := phaseConflict(d.Phase); ok {
		result.Conflicts = append(result.Conflicts, c)
	}

	if err := v.ValidateSettings(d.Settings); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettingVal,
			Description: fmt.Sprintf("Settings are invalid: %v", err),
		})
	}

	return result
}

// phaseConflict checks completed phases are exactly 1..current-1 in order.
func phaseConflict(p models.PhaseData) (Conflict, bool) {
	if p.CurrentPhase < constants.FirstPhase || p.CurrentPhase > constants.FinalPhase {
		return Conflict{
			Type:        ConflictPhaseSequence,
			Description: fmt.Sprintf("Current phase %d is out of range", p.CurrentPhase),
		}, true
	}
	ok := len(p.CompletedPhases) == p.CurrentPhase-1
	for i, id := range p.CompletedPhases {
		if !ok || id != i+1 {
			ok = false
			break
		}
	}
	if ok {
		return Conflict{}, false
	}
	return Conflict{
		Type:        ConflictPhaseSequence,
		Description: fmt.Sprintf("Completed phases %v do not match current phase %d", p.CompletedPhases, p.CurrentPhase),
	}, true
}
