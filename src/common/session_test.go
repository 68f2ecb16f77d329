package common

import (
	"context"
	"errors"
	"math"
	"testing"

	"rephotos/src/models"

	"github.com/stretchr/testify/assert"
)

// stubStore records every call so tests can assert which writes happened.
type stubStore struct {
	rows      []models.Booking
	selectErr error
	upsertErr error
	upserts   [][]models.Booking
	deleted   []string
}

func (s *stubStore) Select(ctx context.Context) ([]models.Booking, error) {
	if s.selectErr != nil {
		return nil, s.selectErr
	}
	return s.rows, nil
}

func (s *stubStore) Get(ctx context.Context, id string) (models.Booking, error) {
	for _, b := range s.rows {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, errors.New("record not found")
}

func (s *stubStore) Upsert(ctx context.Context, records []models.Booking) ([]models.Booking, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	s.upserts = append(s.upserts, records)
	return records, nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestSession(store BookingStore) *EditSession {
	return NewEditSession(store, models.Booking{
		ID:           "bk-1",
		AgentName:    "Jane Smith",
		PropertySize: "1000-2000 sq ft",
	})
}

func TestAddServiceTwiceIncrements(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.AddService("HDR Photography")
	s.AddService("HDR Photography")

	draft := s.Draft()
	assert.Len(t, draft.Services, 1)
	assert.Equal(t, 2, draft.Services[0].Count)
	assert.InDelta(t, 399.98, draft.TotalAmount, 1e-9)
}

func TestAddServiceUnknownNameIgnored(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.AddService("Underwater Photography")
	assert.Empty(t, s.Draft().Services)
}

func TestAddServiceInsertsAtHead(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.AddService("HDR Photography")
	s.AddService("2D Floor Plan")

	draft := s.Draft()
	assert.Equal(t, "2D Floor Plan", draft.Services[0].Name)
	assert.Equal(t, "HDR Photography", draft.Services[1].Name)
}

func TestRemoveServiceDropsAtCountOne(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.AddService("HDR Photography")
	s.AddService("HDR Photography")

	s.RemoveService("HDR Photography")
	assert.Equal(t, 1, s.Draft().Services[0].Count)

	s.RemoveService("HDR Photography")
	assert.Empty(t, s.Draft().Services)
	assert.Equal(t, 0.0, s.Draft().TotalAmount)

	// Re-adding after a full removal starts over at the head with count 1.
	s.AddService("HDR Photography")
	assert.Equal(t, 1, s.Draft().Services[0].Count)
}

func TestIncrementDecrementService(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.AddService("2D Floor Plan")
	s.IncrementService("2D Floor Plan")
	assert.Equal(t, 2, s.Draft().Services[0].Count)

	s.DecrementService("2D Floor Plan")
	assert.Equal(t, 1, s.Draft().Services[0].Count)

	s.IncrementService("not in the list")
	assert.Len(t, s.Draft().Services, 1)
}

func TestAddCustomService(t *testing.T) {
	s := newTestSession(&stubStore{})
	assert.False(t, s.AddCustomService("", 50))
	assert.False(t, s.AddCustomService("   ", 50))
	assert.False(t, s.AddCustomService("Rush Delivery", -1))
	assert.False(t, s.AddCustomService("Rush Delivery", math.NaN()))
	assert.Empty(t, s.Draft().Services)

	assert.True(t, s.AddCustomService("Rush Delivery", 75))
	draft := s.Draft()
	assert.Equal(t, "Rush Delivery", draft.Services[0].Name)
	assert.Equal(t, 1, draft.Services[0].Count)
	assert.InDelta(t, 75.0, draft.TotalAmount, 1e-9)
}

func TestCategoryChangeReconcilesCatalogPrices(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.AddService("HDR Photography")
	s.AddCustomService("Rush Delivery", 75)

	s.SetField("property_size", "2000-3000 sq ft")

	draft := s.Draft()
	for _, svc := range draft.Services {
		switch svc.Name {
		case "HDR Photography":
			assert.Equal(t, 249.99, svc.Price)
		case "Rush Delivery":
			assert.Equal(t, 75.0, svc.Price)
		}
	}
	assert.InDelta(t, 324.99, draft.TotalAmount, 1e-9)
}

func TestReorderBounds(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.AddService("HDR Photography")
	s.AddService("2D Floor Plan")
	s.AddService("Virtual Staging")

	// ["Virtual Staging", "2D Floor Plan", "HDR Photography"]
	s.Reorder(0, MoveUp)
	assert.Equal(t, "Virtual Staging", s.Draft().Services[0].Name)

	s.Reorder(2, MoveDown)
	assert.Equal(t, "HDR Photography", s.Draft().Services[2].Name)

	s.Reorder(1, MoveDown)
	assert.Equal(t, "HDR Photography", s.Draft().Services[1].Name)
	assert.Equal(t, "2D Floor Plan", s.Draft().Services[2].Name)
}

func TestReplaceDraftKeepsPersistedIdentity(t *testing.T) {
	s := newTestSession(&stubStore{})
	s.ReplaceDraft(models.Booking{
		ID:           "something-else",
		AgentName:    "John Doe",
		PropertySize: "1000-2000 sq ft",
	})
	assert.Equal(t, "bk-1", s.Draft().ID)
	assert.Equal(t, "John Doe", s.Draft().AgentName)
}

func TestSaveRejectsBadTime(t *testing.T) {
	store := &stubStore{}
	s := newTestSession(store)
	s.SetField("time", "930")

	_, err := s.Save(context.Background())
	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
	assert.Equal(t, "time", ferr.Field)
	assert.Empty(t, store.upserts)

	s.SetField("time", "25:00:00")
	_, err = s.Save(context.Background())
	assert.ErrorAs(t, err, &ferr)
	assert.Empty(t, store.upserts)
}

func TestSaveRejectsBadDate(t *testing.T) {
	store := &stubStore{}
	s := newTestSession(store)
	s.SetField("preferred_date", "09/15/2026")

	_, err := s.Save(context.Background())
	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
	assert.Equal(t, "preferred_date", ferr.Field)
	assert.Empty(t, store.upserts)
}

func TestSaveNormalizesTimeAndDate(t *testing.T) {
	store := &stubStore{}
	s := newTestSession(store)
	s.SetField("time", "14:30")
	s.SetField("preferred_date", "2026-09-15")

	saved, err := s.Save(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "14:30:00", saved.Time)
	assert.Equal(t, "2026-09-15T12:00:00", saved.PreferredDate)
	assert.Len(t, store.upserts, 1)
	assert.Len(t, store.upserts[0], 1)
	assert.Equal(t, s.Persisted(), saved)
	assert.Equal(t, s.Draft(), saved)
}

func TestSaveFailureRetainsDraft(t *testing.T) {
	store := &stubStore{upsertErr: errors.New("connection refused")}
	s := newTestSession(store)
	s.SetField("notes", "lockbox code 4321")

	_, err := s.Save(context.Background())
	assert.NotNil(t, err)
	assert.Equal(t, "lockbox code 4321", s.Draft().Notes)
	assert.Equal(t, "", s.Persisted().Notes)
}
