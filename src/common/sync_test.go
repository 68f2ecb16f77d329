package common

import (
	"context"
	"errors"
	"testing"

	"rephotos/src/models"

	"github.com/stretchr/testify/assert"
)

type stubBulletin struct {
	published []int
	stored    []int
	count     int
}

func (b *stubBulletin) NewBookings(ctx context.Context, count int) error {
	b.published = append(b.published, count)
	return nil
}

func (b *stubBulletin) LoadCount(ctx context.Context) (int, error) {
	return b.count, nil
}

func (b *stubBulletin) StoreCount(ctx context.Context, count int) error {
	b.stored = append(b.stored, count)
	return nil
}

func bookingsOfSize(n int) []models.Booking {
	out := make([]models.Booking, n)
	for i := range out {
		out[i] = models.Booking{ID: string(rune('a' + i))}
	}
	return out
}

func TestFirstFetchAnnouncesNothing(t *testing.T) {
	store := &stubStore{rows: bookingsOfSize(3)}
	bulletin := &stubBulletin{}
	s := NewSynchronizer(store, WithNotifier(bulletin), WithCountStore(bulletin))

	_, err := s.Refresh(context.Background())
	assert.Nil(t, err)

	data, _, newCount := s.Snapshot()
	assert.Len(t, data, 3)
	assert.Equal(t, 0, newCount)
	assert.Empty(t, bulletin.published)
	assert.Equal(t, []int{3}, bulletin.stored)
	assert.Equal(t, 3, s.PreviousCount())
}

func TestPollDetectsNewBookings(t *testing.T) {
	store := &stubStore{rows: bookingsOfSize(3)}
	bulletin := &stubBulletin{}
	s := NewSynchronizer(store, WithNotifier(bulletin), WithCountStore(bulletin))

	_, err := s.Refresh(context.Background())
	assert.Nil(t, err)

	store.rows = bookingsOfSize(5)
	s.poll(context.Background())

	data, _, newCount := s.Snapshot()
	assert.Len(t, data, 5)
	assert.Equal(t, 2, newCount)
	assert.Equal(t, []int{2}, bulletin.published)
	assert.Equal(t, 5, s.PreviousCount())

	s.AckNewBookings()
	_, _, newCount = s.Snapshot()
	assert.Equal(t, 0, newCount)
}

func TestShrinkingCollectionAnnouncesNothing(t *testing.T) {
	store := &stubStore{rows: bookingsOfSize(5)}
	bulletin := &stubBulletin{}
	s := NewSynchronizer(store, WithNotifier(bulletin), WithCountStore(bulletin))

	s.Refresh(context.Background())
	store.rows = bookingsOfSize(2)
	s.poll(context.Background())

	assert.Empty(t, bulletin.published)
	assert.Equal(t, 2, s.PreviousCount())
}

func TestSilentPollSkipsIdenticalPayload(t *testing.T) {
	store := &stubStore{rows: bookingsOfSize(3)}
	s := NewSynchronizer(store)

	s.Refresh(context.Background())
	_, first, _ := s.Snapshot()

	s.poll(context.Background())
	_, second, _ := s.Snapshot()
	assert.Equal(t, first, second)

	store.rows = bookingsOfSize(4)
	s.poll(context.Background())
	_, third, _ := s.Snapshot()
	assert.NotEqual(t, first, third)
}

func TestSilentErrorsAreSwallowed(t *testing.T) {
	store := &stubStore{rows: bookingsOfSize(3)}
	s := NewSynchronizer(store)

	s.Refresh(context.Background())
	data, _, _ := s.Snapshot()
	assert.Len(t, data, 3)

	store.selectErr = errors.New("connection refused")
	s.poll(context.Background())

	data, _, _ = s.Snapshot()
	assert.Len(t, data, 3)
	assert.Nil(t, s.LastError())
}

func TestManualErrorSurfaces(t *testing.T) {
	store := &stubStore{selectErr: errors.New("connection refused")}
	s := NewSynchronizer(store)

	_, err := s.Refresh(context.Background())
	assert.NotNil(t, err)
	assert.NotNil(t, s.LastError())

	store.selectErr = nil
	store.rows = bookingsOfSize(1)
	_, err = s.Refresh(context.Background())
	assert.Nil(t, err)
	assert.Nil(t, s.LastError())
}
