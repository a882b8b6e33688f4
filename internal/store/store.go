package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cargo-tracker/internal/gateway"
	"cargo-tracker/internal/logger"
	"cargo-tracker/internal/shipment/model"
	"cargo-tracker/internal/shipment/validator"
)

// Gateway is the remote API surface the store depends on.
type Gateway interface {
	List(ctx context.Context) ([]model.Shipment, error)
	GetByID(ctx context.Context, id string) (*model.Shipment, error)
	Create(ctx context.Context, req *model.CreateShipmentRequest) (*model.Shipment, error)
	Update(ctx context.Context, id string, req *model.UpdateShipmentRequest) (*model.Shipment, error)
	UpdateLocation(ctx context.Context, id string, req *model.UpdateLocationRequest) (*model.Shipment, error)
	GetETA(ctx context.Context, id string) (model.ETA, error)
	Delete(ctx context.Context, id string) error
	Lookup(ctx context.Context, ref string) (*model.Shipment, error)
}

// Store is the single source of truth for shipment data. All mutation runs
// through its operations; no caller holds a private copy. Every operation is
// a three-phase transition (begin, then exactly one of success or failure)
// tracked per operation family.
type Store struct {
	gw     Gateway
	notify Notifier

	mu        sync.Mutex
	shipments []model.Shipment
	current   *model.Shipment
	status    map[Operation]OpStatus
	lastErr   string
	etaData   model.ETA
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier replaces the default log-backed notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// New builds an empty store backed by the given gateway.
func New(gw Gateway, opts ...Option) *Store {
	s := &Store{
		gw:     gw,
		notify: logNotifier{},
		status: make(map[Operation]OpStatus),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) begin(op Operation) {
	s.mu.Lock()
	s.status[op] = OpStatus{Phase: Pending}
	s.mu.Unlock()
}

func (s *Store) fail(op Operation, err error, fallback string) {
	msg := gateway.Message(err, fallback)
	s.mu.Lock()
	s.status[op] = OpStatus{Phase: Failed, Err: msg}
	s.lastErr = msg
	s.mu.Unlock()
	logger.Warn("shipment operation failed",
		zap.String("operation", string(op)),
		zap.Error(err),
	)
	s.notify.Error(msg)
}

// List replaces the collection wholesale with the server's view; entries
// removed server-side are dropped. On failure the previous collection is left
// exactly as it was.
func (s *Store) List(ctx context.Context) error {
	s.begin(OpList)
	shipments, err := s.gw.List(ctx)
	if err != nil {
		s.fail(OpList, err, "Failed to fetch shipments")
		return err
	}
	s.mu.Lock()
	s.shipments = shipments
	s.status[OpList] = OpStatus{Phase: Succeeded}
	s.mu.Unlock()
	return nil
}

// Get fetches one shipment into the current-shipment slot.
func (s *Store) Get(ctx context.Context, id string) (*model.Shipment, error) {
	s.begin(OpGet)
	shipment, err := s.gw.GetByID(ctx, id)
	if err != nil {
		s.fail(OpGet, err, "Failed to fetch shipment")
		return nil, err
	}
	s.mu.Lock()
	s.current = shipment
	s.status[OpGet] = OpStatus{Phase: Succeeded}
	s.mu.Unlock()
	return shipment, nil
}

// Track resolves a tracking reference (container number first, raw id as
// fallback) into the current-shipment slot.
func (s *Store) Track(ctx context.Context, ref string) (*model.Shipment, error) {
	s.begin(OpGet)
	shipment, err := s.gw.Lookup(ctx, ref)
	if err != nil {
		s.fail(OpGet, err, "Shipment not found. Please check the tracking ID and try again.")
		return nil, err
	}
	s.mu.Lock()
	s.current = shipment
	s.status[OpGet] = OpStatus{Phase: Succeeded}
	s.mu.Unlock()
	return shipment, nil
}

// Create validates the request, synthesizes the origin stop when the current
// location is missing from the route, and submits it. Validation failures are
// field-scoped, never recorded as operation errors, and never reach the
// gateway. The returned entity is appended to the collection as-is.
func (s *Store) Create(ctx context.Context, req *model.CreateShipmentRequest) (*model.Shipment, error) {
	if errs := validator.ValidateCreateShipment(req); errs != nil {
		return nil, errs
	}
	req.EnsureOriginStop(time.Now().UTC())

	s.begin(OpCreate)
	created, err := s.gw.Create(ctx, req)
	if err != nil {
		s.fail(OpCreate, err, "Failed to create shipment")
		return nil, err
	}
	s.mu.Lock()
	s.shipments = append(s.shipments, *created)
	s.status[OpCreate] = OpStatus{Phase: Succeeded}
	s.mu.Unlock()
	s.notify.Success("Shipment created successfully")
	return created, nil
}

// Update submits a partial update; the server's returned entity replaces the
// client copy wherever the id matches. An id absent from the collection is a
// silent no-op for the list.
func (s *Store) Update(ctx context.Context, id string, req *model.UpdateShipmentRequest) (*model.Shipment, error) {
	s.begin(OpUpdate)
	updated, err := s.gw.Update(ctx, id, req)
	if err != nil {
		s.fail(OpUpdate, err, "Failed to update shipment")
		return nil, err
	}
	s.replace(updated, OpUpdate)
	s.notify.Success("Shipment updated successfully")
	return updated, nil
}

// UpdateLocation validates and reports a new position. Replacement semantics
// match Update.
func (s *Store) UpdateLocation(ctx context.Context, id string, req *model.UpdateLocationRequest) (*model.Shipment, error) {
	if errs := validator.ValidateLocationUpdate(req); errs != nil {
		return nil, errs
	}
	s.begin(OpUpdateLocation)
	updated, err := s.gw.UpdateLocation(ctx, id, req)
	if err != nil {
		s.fail(OpUpdateLocation, err, "Failed to update location")
		return nil, err
	}
	s.replace(updated, OpUpdateLocation)
	s.notify.Success("Shipment location updated")
	return updated, nil
}

// replace swaps the returned entity into the collection in place, preserving
// position, and refreshes the current shipment when it shares the id.
func (s *Store) replace(updated *model.Shipment, op Operation) {
	s.mu.Lock()
	for i := range s.shipments {
		if s.shipments[i].ID == updated.ID {
			s.shipments[i] = *updated
			break
		}
	}
	if s.current != nil && s.current.ID == updated.ID {
		s.current = updated
	}
	s.status[op] = OpStatus{Phase: Succeeded}
	s.mu.Unlock()
}

// Delete evicts the shipment from the collection and clears the current slot
// when it matches. Deleting an id that is not present succeeds and changes
// nothing.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.begin(OpDelete)
	if err := s.gw.Delete(ctx, id); err != nil {
		s.fail(OpDelete, err, "Failed to delete shipment")
		return err
	}
	s.mu.Lock()
	kept := s.shipments[:0]
	for _, sh := range s.shipments {
		if sh.ID != id {
			kept = append(kept, sh)
		}
	}
	s.shipments = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.status[OpDelete] = OpStatus{Phase: Succeeded}
	s.mu.Unlock()
	s.notify.Success("Shipment deleted successfully")
	return nil
}

// FetchETA loads the arrival estimate. Its status is tracked independently of
// the shipment operations and never touches their error state.
func (s *Store) FetchETA(ctx context.Context, id string) (model.ETA, error) {
	s.begin(OpETA)
	eta, err := s.gw.GetETA(ctx, id)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch ETA")
		s.mu.Lock()
		s.status[OpETA] = OpStatus{Phase: Failed, Err: msg}
		s.mu.Unlock()
		s.notify.Error(msg)
		return nil, err
	}
	s.mu.Lock()
	s.etaData = eta
	s.status[OpETA] = OpStatus{Phase: Succeeded}
	s.mu.Unlock()
	return eta, nil
}

// Shipments returns a copy of the collection.
func (s *Store) Shipments() []model.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Shipment, len(s.shipments))
	copy(out, s.shipments)
	return out
}

// Current returns the current shipment, or nil when no detail view is active.
func (s *Store) Current() *model.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// ETA returns the last fetched arrival estimate.
func (s *Store) ETA() model.ETA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.etaData
}

// Status reports the tracked state of one operation family.
func (s *Store) Status(op Operation) OpStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[op]
}

// Loading collapses the keyed statuses to the legacy shared flag: true while
// any shipment operation is pending. ETA is excluded, as before.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for op, st := range s.status {
		if op != OpETA && st.Phase == Pending {
			return true
		}
	}
	return false
}

// Err collapses the keyed statuses to the legacy shared error: the message of
// the most recent failure, empty when ClearErrors has run since.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearCurrent empties the current-shipment slot; called when a detail view
// is left.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// ClearErrors resets every failed operation to idle and clears the legacy
// error.
func (s *Store) ClearErrors() {
	s.mu.Lock()
	for op, st := range s.status {
		if st.Phase == Failed {
			s.status[op] = OpStatus{}
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
}
