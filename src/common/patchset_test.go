package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"rephotos/src/models"
	"rephotos/src/types"

	"github.com/stretchr/testify/assert"
)

func testBookings() []models.Booking {
	return []models.Booking{
		{
			ID:            "bk-1",
			AgentName:     "Jane Smith",
			Status:        types.BOOKING_PENDING,
			PaymentStatus: types.PAYMENT_NOT_PAID,
			EditingStatus: types.EDITING_UNASSIGNED,
			PreferredDate: "2026-09-10T12:00:00",
			CreatedAt:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            "bk-2",
			AgentName:     "John Doe",
			Status:        types.BOOKING_EDITING,
			PaymentStatus: types.PAYMENT_PAID,
			EditingStatus: types.EDITING_IN_EDITING,
			PreferredDate: "2026-09-05T12:00:00",
			CreatedAt:     time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            "bk-3",
			AgentName:     "Sam Lee",
			Status:        types.BOOKING_PENDING,
			PaymentStatus: types.PAYMENT_PAID,
			EditingStatus: types.EDITING_UNASSIGNED,
			PreferredDate: "2026-09-20T12:00:00",
			CreatedAt:     time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestSetStatusFieldMerges(t *testing.T) {
	e := NewAggregateEditor(&stubStore{}, testBookings())

	assert.Nil(t, e.SetStatusField("bk-1", FieldStatus, "editing"))
	assert.Nil(t, e.SetStatusField("bk-1", FieldPaymentStatus, "paid"))
	assert.Equal(t, 1, e.PendingCount())
	assert.True(t, e.HasPendingChanges())
}

func TestSetStatusFieldRequiresId(t *testing.T) {
	e := NewAggregateEditor(&stubStore{}, testBookings())
	err := e.SetStatusField("", FieldStatus, "editing")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSaveAllMergesOntoOriginals(t *testing.T) {
	store := &stubStore{}
	e := NewAggregateEditor(store, testBookings())
	e.SetStatusField("bk-1", FieldStatus, "editing")
	e.SetStatusField("bk-1", FieldPaymentStatus, "paid")

	rows, err := e.SaveAll(context.Background())
	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, types.BOOKING_EDITING, rows[0].Status)
	assert.Equal(t, types.PAYMENT_PAID, rows[0].PaymentStatus)
	// Fields outside the patch ride along from the original record.
	assert.Equal(t, "Jane Smith", rows[0].AgentName)
	assert.Equal(t, types.EDITING_UNASSIGNED, rows[0].EditingStatus)
	assert.False(t, e.HasPendingChanges())
	assert.Len(t, store.upserts, 1)
}

func TestSaveAllUnknownId(t *testing.T) {
	store := &stubStore{}
	e := NewAggregateEditor(store, testBookings())
	e.SetStatusField("bk-99", FieldStatus, "editing")

	_, err := e.SaveAll(context.Background())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, store.upserts)
}

func TestSaveAllFailureRetainsPending(t *testing.T) {
	store := &stubStore{upsertErr: errors.New("connection refused")}
	e := NewAggregateEditor(store, testBookings())
	e.SetStatusField("bk-1", FieldStatus, "cancelled")
	e.SetStatusField("bk-2", FieldEditingStatus, "done_editing")

	_, err := e.SaveAll(context.Background())
	assert.NotNil(t, err)
	assert.Equal(t, 2, e.PendingCount())

	store.upsertErr = nil
	rows, err := e.SaveAll(context.Background())
	assert.Nil(t, err)
	assert.Len(t, rows, 2)
	assert.False(t, e.HasPendingChanges())
}

func TestSaveAllEmptyIsNoop(t *testing.T) {
	store := &stubStore{}
	e := NewAggregateEditor(store, testBookings())
	rows, err := e.SaveAll(context.Background())
	assert.Nil(t, err)
	assert.Nil(t, rows)
	assert.Empty(t, store.upserts)
}

func TestPendingSurvivesRefetch(t *testing.T) {
	e := NewAggregateEditor(&stubStore{}, testBookings())
	e.SetStatusField("bk-1", FieldStatus, "editing")
	e.SetBookings(testBookings())
	assert.Equal(t, 1, e.PendingCount())
}

func TestFilterCombinesWithAnd(t *testing.T) {
	e := NewAggregateEditor(&stubStore{}, testBookings())

	out := e.Filter(FilterOptions{Status: "pending"})
	assert.Len(t, out, 2)

	out = e.Filter(FilterOptions{Status: "pending", PaymentStatus: "paid"})
	assert.Len(t, out, 1)
	assert.Equal(t, "bk-3", out[0].ID)

	out = e.Filter(FilterOptions{})
	assert.Len(t, out, 3)

	out = e.Filter(FilterOptions{Status: "pending", PaymentStatus: "paid", EditingStatus: "in_editing"})
	assert.Empty(t, out)
}

func TestToggleSort(t *testing.T) {
	e := NewAggregateEditor(&stubStore{}, testBookings())

	field, asc := e.SortState()
	assert.Equal(t, SortCreatedAt, field)
	assert.False(t, asc)

	e.ToggleSort(SortCreatedAt)
	_, asc = e.SortState()
	assert.True(t, asc)

	e.ToggleSort(SortPreferredDate)
	field, asc = e.SortState()
	assert.Equal(t, SortPreferredDate, field)
	assert.True(t, asc)

	e.ToggleSort(SortPreferredDate)
	_, asc = e.SortState()
	assert.False(t, asc)

	e.ToggleSort(SortCreatedAt)
	field, asc = e.SortState()
	assert.Equal(t, SortCreatedAt, field)
	assert.False(t, asc)
}

func TestSorted(t *testing.T) {
	e := NewAggregateEditor(&stubStore{}, testBookings())

	// Default is newest created first.
	out := e.Sorted(e.Bookings())
	assert.Equal(t, "bk-3", out[0].ID)
	assert.Equal(t, "bk-1", out[2].ID)

	e.ToggleSort(SortPreferredDate)
	out = e.Sorted(e.Bookings())
	assert.Equal(t, "bk-2", out[0].ID)
	assert.Equal(t, "bk-3", out[2].ID)

	e.ToggleSort(SortPreferredDate)
	out = e.Sorted(e.Bookings())
	assert.Equal(t, "bk-3", out[0].ID)
}
