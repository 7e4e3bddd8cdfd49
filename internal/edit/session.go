// Package edit implements the inline quantity edit lifecycle for inventory items.
//
// An Editor holds at most one session for the whole inventory view. Starting a
// new session discards the open one, except while a commit is in flight, when
// starting, cancelling and editing are all refused until the store responds.
package edit

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/metrics"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/shopspring/decimal"
)

// Status is the state of the editor's single session.
type Status int

const (
	// StatusIdle means no session is open.
	StatusIdle Status = iota
	// StatusEditing means the working quantity may diverge from the stored one.
	StatusEditing
	// StatusSaving means a commit request has been issued and not yet answered.
	StatusSaving
	// StatusError means the last commit failed; the working quantity is kept.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusEditing:
		return "editing"
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the store operation a commit resolved to.
type Outcome int

const (
	// OutcomeNoop means the quantity was unchanged and no store call was made.
	OutcomeNoop Outcome = iota
	// OutcomeUpdated means an update-quantity request was issued.
	OutcomeUpdated
	// OutcomeDeleted means the quantity was zero and the item was deleted.
	OutcomeDeleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "noop"
	}
}

// Lifecycle errors.
var (
	ErrNoActiveSession = errors.New("no active edit session")
	ErrCommitInFlight  = errors.New("a quantity change is still being saved")
)

// Writer is the part of the inventory store a commit writes through.
type Writer interface {
	UpdateQuantity(ctx context.Context, id string, quantity float64) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
}

// Invalidator is told when a commit changed the stored inventory.
type Invalidator interface {
	InvalidateInventory()
}

// View is a read-only copy of the open session.
type View struct {
	Err     error
	Item    model.InventoryItem // Last known stored state
	Working float64
	Status  Status
}

type session struct {
	err     error
	item    model.InventoryItem
	working decimal.Decimal
	status  Status
	version uint64 // Inventory version the item was read from; 0 if unknown
}

// Editor owns the single inline edit session of the inventory view.
type Editor struct {
	store       Writer
	invalidator Invalidator
	metrics     *metrics.Recorder
	active      *session
	mu          sync.Mutex
}

// Option configures an Editor.
type Option func(*Editor)

// WithMetrics reports commits and the active session gauge to r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Editor) {
		e.metrics = r
	}
}

// New creates an editor committing through store and notifying invalidator
// after every successful write. The invalidator may be nil.
func New(store Writer, invalidator Invalidator, opts ...Option) *Editor {
	e := &Editor{
		store:       store,
		invalidator: invalidator,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start opens a session for item seeded with its stored quantity. An open
// session in Editing or Error is discarded first. While a commit is in
// flight Start fails with ErrCommitInFlight.
func (e *Editor) Start(item model.InventoryItem) error {
	return e.StartAt(item, 0)
}

// StartAt is Start for an item read from the inventory snapshot with the
// given version. Only a newer version discards the session on Refreshed.
func (e *Editor) StartAt(item model.InventoryItem, version uint64) error {
	if strings.TrimSpace(item.ID) == "" {
		return common.NewValidationError("item", "missing id")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		if e.active.status == StatusSaving {
			return ErrCommitInFlight
		}
		slog.Debug("discarding open edit session",
			"item_id", e.active.item.ID,
			"status", e.active.status)
	}

	e.active = &session{
		item:    item,
		working: decimal.NewFromFloat(item.Quantity),
		status:  StatusEditing,
		version: version,
	}
	e.metrics.SetEditActive(true)
	slog.Debug("edit session started", "item_id", item.ID, "quantity", item.Quantity)
	return nil
}

// CanStart reports whether Start would be accepted now.
func (e *Editor) CanStart() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active == nil || e.active.status != StatusSaving
}

// Adjust adds delta to the working quantity, rounding to two decimal places
// and clamping at zero. It returns the new working quantity.
func (e *Editor) Adjust(delta float64) (float64, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0, common.NewValidationError("delta", "not a finite number")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.editable()
	if err != nil {
		return 0, err
	}

	next := s.working.Add(decimal.NewFromFloat(delta)).Round(2)
	if next.IsNegative() {
		next = decimal.Zero
	}
	s.working = next
	s.status = StatusEditing
	s.err = nil

	return next.InexactFloat64(), nil
}

// SetExact replaces the working quantity. Negative or non-finite values are
// refused with a validation error and leave the session untouched.
func (e *Editor) SetExact(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return common.NewValidationError("quantity", "not a finite number")
	}
	if value < 0 {
		return common.NewValidationError("quantity", "must not be negative")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.editable()
	if err != nil {
		return err
	}

	s.working = decimal.NewFromFloat(value)
	s.status = StatusEditing
	s.err = nil
	return nil
}

// SetInput parses typed text into the working quantity. Empty text means zero.
func (e *Editor) SetInput(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return e.SetExact(0)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return common.NewValidationError("quantity", "not a number")
	}
	return e.SetExact(value)
}

// editable returns the session if its working value may change. Callers hold mu.
func (e *Editor) editable() (*session, error) {
	if e.active == nil {
		return nil, ErrNoActiveSession
	}
	if e.active.status == StatusSaving {
		return nil, ErrCommitInFlight
	}
	return e.active, nil
}

// Commit resolves the working quantity against the store.
//
// An unchanged quantity closes the session without any store call. A zero
// quantity deletes the item; anything else updates it. On success the session
// closes and the inventory is invalidated. On failure the session moves to
// StatusError with the working quantity kept, and a *common.CommitError is
// returned.
func (e *Editor) Commit(ctx context.Context) (Outcome, error) {
	e.mu.Lock()
	s, err := e.editable()
	if err != nil {
		e.mu.Unlock()
		return OutcomeNoop, err
	}

	if s.working.Equal(decimal.NewFromFloat(s.item.Quantity)) {
		e.close()
		e.mu.Unlock()
		e.metrics.Commit(OutcomeNoop.String())
		slog.Debug("quantity unchanged, closing edit session", "item_id", s.item.ID)
		return OutcomeNoop, nil
	}

	s.status = StatusSaving
	s.err = nil
	id := s.item.ID
	working := s.working
	e.mu.Unlock()

	outcome := OutcomeUpdated
	if working.IsZero() {
		outcome = OutcomeDeleted
		err = e.store.DeleteItem(ctx, id)
	} else {
		_, err = e.store.UpdateQuantity(ctx, id, working.InexactFloat64())
	}

	e.mu.Lock()
	if err != nil {
		commitErr := common.NewCommitError(err)
		s.status = StatusError
		s.err = commitErr
		e.mu.Unlock()

		e.metrics.Commit("failed")
		slog.Warn("quantity commit failed",
			"item_id", id,
			"outcome", outcome.String(),
			"kind", commitErr.Kind.String(),
			"error", err)
		return outcome, commitErr
	}
	e.close()
	e.mu.Unlock()

	e.metrics.Commit(outcome.String())
	slog.Debug("quantity committed", "item_id", id, "outcome", outcome.String())
	if e.invalidator != nil {
		e.invalidator.InvalidateInventory()
	}
	return outcome, nil
}

// Cancel discards the session from Editing or Error without any store call.
// Cancelling with no session is a no-op.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil
	}
	if e.active.status == StatusSaving {
		return ErrCommitInFlight
	}
	slog.Debug("edit session cancelled", "item_id", e.active.item.ID)
	e.close()
	return nil
}

// Refreshed tells the editor that the inventory list now shows the snapshot
// with version. A session in Editing that was started on an older snapshot
// is discarded; sessions that are saving or holding a failed commit are kept
// so no entered value is lost silently. It reports whether a session was
// discarded.
func (e *Editor) Refreshed(version uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil || e.active.status != StatusEditing || version <= e.active.version {
		return false
	}
	slog.Debug("inventory refreshed, discarding edit session",
		"item_id", e.active.item.ID,
		"started_at", e.active.version,
		"version", version)
	e.close()
	return true
}

// Status returns the state of the editor's session.
func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return StatusIdle
	}
	return e.active.status
}

// View returns a copy of the open session, or false when idle.
func (e *Editor) View() (View, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return View{Status: StatusIdle}, false
	}
	return View{
		Item:    e.active.item,
		Working: e.active.working.InexactFloat64(),
		Status:  e.active.status,
		Err:     e.active.err,
	}, true
}

// close drops the session. Callers hold mu.
func (e *Editor) close() {
	e.active = nil
	e.metrics.SetEditActive(false)
}
