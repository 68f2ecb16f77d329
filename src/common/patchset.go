package common

import (
	"context"
	"fmt"
	"sort"

	"rephotos/src/models"
	"rephotos/src/types"
)

// StatusField names one of the three orthogonal status enums editable from
// the table view.
type StatusField string

const (
	FieldStatus        StatusField = "status"
	FieldPaymentStatus StatusField = "payment_status"
	FieldEditingStatus StatusField = "editing_status"
)

// StatusPatch is a partial patch for one booking. Nil means the field is not
// part of the patch; later edits to other fields merge instead of discarding
// earlier ones.
type StatusPatch struct {
	Status        *types.BookingStatus
	PaymentStatus *types.PaymentStatus
	EditingStatus *types.EditingStatus
}

type SortField string

const (
	SortPreferredDate SortField = "preferred_date"
	SortCreatedAt     SortField = "created_at"
)

// FilterOptions are the three AND-combined table filters; the empty string
// means no filter on that field.
type FilterOptions struct {
	Status        string
	PaymentStatus string
	EditingStatus string
}

// AggregateEditor tracks batched status edits across the fetched booking
// collection. Pending patches survive refetches and are cleared only by a
// successful SaveAll.
type AggregateEditor struct {
	store         BookingStore
	bookings      []models.Booking
	pending       map[string]StatusPatch
	sortField     SortField
	sortAscending bool
}

func NewAggregateEditor(store BookingStore, bookings []models.Booking) *AggregateEditor {
	return &AggregateEditor{
		store:         store,
		bookings:      bookings,
		pending:       map[string]StatusPatch{},
		sortField:     SortCreatedAt,
		sortAscending: false,
	}
}

// SetBookings replaces the collection after a refetch. Pending patches are
// untouched.
func (e *AggregateEditor) SetBookings(bookings []models.Booking) {
	e.bookings = bookings
}

func (e *AggregateEditor) Bookings() []models.Booking {
	return e.bookings
}

// SetStatusField upserts one field into the pending patch for the given
// booking, merging with any fields already pending for that id.
func (e *AggregateEditor) SetStatusField(id string, field StatusField, value string) error {
	if id == "" {
		return &ValidationError{Reason: "each update must include an id"}
	}
	patch := e.pending[id]
	switch field {
	case FieldStatus:
		v := types.BookingStatus(value)
		patch.Status = &v
	case FieldPaymentStatus:
		v := types.PaymentStatus(value)
		patch.PaymentStatus = &v
	case FieldEditingStatus:
		v := types.EditingStatus(value)
		patch.EditingStatus = &v
	default:
		return &ValidationError{Reason: fmt.Sprintf("unknown status field %q", field)}
	}
	e.pending[id] = patch
	return nil
}

func (e *AggregateEditor) HasPendingChanges() bool {
	return len(e.pending) > 0
}

func (e *AggregateEditor) PendingCount() int {
	return len(e.pending)
}

// SaveAll merges every pending patch onto the full original record and issues
// one batched upsert. Success clears the whole set; failure leaves it
// entirely unchanged, so a re-click retries the same batch.
func (e *AggregateEditor) SaveAll(ctx context.Context) ([]models.Booking, error) {
	if len(e.pending) == 0 {
		return nil, nil
	}
	updates := make([]models.Booking, 0, len(e.pending))
	for id, patch := range e.pending {
		original, ok := e.findBooking(id)
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("no booking with id %q in the current collection", id)}
		}
		if patch.Status != nil {
			original.Status = *patch.Status
		}
		if patch.PaymentStatus != nil {
			original.PaymentStatus = *patch.PaymentStatus
		}
		if patch.EditingStatus != nil {
			original.EditingStatus = *patch.EditingStatus
		}
		updates = append(updates, original)
	}
	rows, err := e.store.Upsert(ctx, updates)
	if err != nil {
		return nil, err
	}
	e.pending = map[string]StatusPatch{}
	return rows, nil
}

// Delete bypasses the patch cycle entirely. Confirmation is the caller's
// concern.
func (e *AggregateEditor) Delete(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}

// Filter applies the AND-combined status filters to the fetched collection.
// The pending patch set is not consulted.
func (e *AggregateEditor) Filter(opts FilterOptions) []models.Booking {
	out := make([]models.Booking, 0, len(e.bookings))
	for _, b := range e.bookings {
		if opts.Status != "" && string(b.Status) != opts.Status {
			continue
		}
		if opts.PaymentStatus != "" && string(b.PaymentStatus) != opts.PaymentStatus {
			continue
		}
		if opts.EditingStatus != "" && string(b.EditingStatus) != opts.EditingStatus {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ToggleSort selects a sort field: re-selecting the current field flips
// direction, a new field resets to its default (created_at newest first,
// preferred_date soonest first).
func (e *AggregateEditor) ToggleSort(field SortField) {
	if field == e.sortField {
		e.sortAscending = !e.sortAscending
		return
	}
	e.sortField = field
	e.sortAscending = field == SortPreferredDate
}

func (e *AggregateEditor) SortState() (SortField, bool) {
	return e.sortField, e.sortAscending
}

// Sorted returns a sorted copy of the given records by the current sort
// state. Date fields are compared lexically, which matches their ISO shapes.
func (e *AggregateEditor) Sorted(records []models.Booking) []models.Booking {
	out := append([]models.Booking(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !e.sortAscending {
			a, b = b, a
		}
		if e.sortField == SortPreferredDate {
			return a.PreferredDate < b.PreferredDate
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out
}

func (e *AggregateEditor) findBooking(id string) (models.Booking, bool) {
	for _, b := range e.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}
