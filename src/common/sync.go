package common

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"rephotos/src/lib"
	"rephotos/src/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Notifier receives new-booking events detected by the synchronizer.
type Notifier interface {
	NewBookings(ctx context.Context, count int) error
}

// CountStore persists the last observed collection size across restarts so
// a freshly started instance does not re-announce the whole backlog.
type CountStore interface {
	LoadCount(ctx context.Context) (int, error)
	StoreCount(ctx context.Context, count int) error
}

// Synchronizer keeps a served snapshot of the booking collection fresh: a
// recurring silent poll every interval, an out-of-band Resume trigger when
// the dashboard becomes visible again, and manual refreshes. Collaborators
// are injected at construction; the composition root owns their lifecycle.
type Synchronizer struct {
	store      BookingStore
	notifier   Notifier
	countStore CountStore
	interval   time.Duration
	jobID      *uuid.UUID

	mu          sync.Mutex
	snapshot    []models.Booking
	raw         []byte
	prevCount   int
	newCount    int
	lastUpdated time.Time
	lastErr     error
	generation  uint64
}

type SyncOption func(*Synchronizer)

func WithNotifier(n Notifier) SyncOption {
	return func(s *Synchronizer) { s.notifier = n }
}

func WithCountStore(cs CountStore) SyncOption {
	return func(s *Synchronizer) { s.countStore = cs }
}

func WithInterval(d time.Duration) SyncOption {
	return func(s *Synchronizer) { s.interval = d }
}

func NewSynchronizer(store BookingStore, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		store:    store,
		interval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the initial (non-silent) fetch and schedules the recurring
// silent poll.
func (s *Synchronizer) Start(ctx context.Context) error {
	if s.countStore != nil {
		if count, err := s.countStore.LoadCount(ctx); err == nil {
			s.mu.Lock()
			s.prevCount = count
			s.mu.Unlock()
		}
	}
	if _, err := s.Refresh(ctx); err != nil {
		log.Printf("Initial bookings fetch failed: %s\n", err.Error())
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return err
	}
	job, err := sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			s.poll(context.Background())
		}),
	)
	if err != nil {
		return err
	}
	id := job.ID()
	s.jobID = &id
	return nil
}

// Stop cancels future polls only; an in-flight fetch completes and its result
// is discarded by the generation check.
func (s *Synchronizer) Stop() {
	if s.jobID == nil {
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	if err := sched.RemoveJob(*s.jobID); err != nil {
		log.Printf("Error removing poll job: %s\n", err.Error())
	}
	s.jobID = nil
}

// Refresh is a manual or initial fetch: it always updates the snapshot and
// clears any previous error. Failures are surfaced to the caller.
func (s *Synchronizer) Refresh(ctx context.Context) ([]models.Booking, error) {
	return s.fetch(ctx, false)
}

// Resume handles the dashboard becoming visible again after being
// backgrounded; it behaves like a manual refresh.
func (s *Synchronizer) Resume(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil {
		log.Printf("Resume fetch failed: %s\n", err.Error())
	}
}

// poll is a silent fetch: errors are swallowed and the snapshot only changes
// when the serialized payload differs byte for byte.
func (s *Synchronizer) poll(ctx context.Context) {
	if _, err := s.fetch(ctx, true); err != nil {
		log.Printf("Silent poll failed, retrying on next cycle: %s\n", err.Error())
	}
}

func (s *Synchronizer) fetch(ctx context.Context, silent bool) ([]models.Booking, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	data, err := s.store.Select(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A later fetch already started; this result is stale regardless of
	// which network call finished first.
	if gen != s.generation {
		return nil, nil
	}

	if err != nil {
		if !silent {
			s.lastErr = err
		}
		return nil, err
	}

	// New-record detection compares the raw collection length against the
	// count observed at the previous fetch; active filters play no part.
	if s.prevCount > 0 && len(data) > s.prevCount {
		delta := len(data) - s.prevCount
		s.newCount = delta
		if s.notifier != nil {
			if nerr := s.notifier.NewBookings(ctx, delta); nerr != nil {
				log.Printf("Error publishing new-bookings event: %s\n", nerr.Error())
			}
		}
		log.Printf("%d new bookings detected\n", delta)
	}
	s.prevCount = len(data)
	if s.countStore != nil {
		if serr := s.countStore.StoreCount(ctx, len(data)); serr != nil {
			log.Printf("Error persisting booking count: %s\n", serr.Error())
		}
	}

	raw, merr := json.Marshal(data)
	if merr != nil {
		raw = nil
	}
	if silent {
		if !bytes.Equal(raw, s.raw) {
			s.snapshot = data
			s.raw = raw
			s.lastUpdated = time.Now()
		}
	} else {
		s.snapshot = data
		s.raw = raw
		s.lastUpdated = time.Now()
		s.lastErr = nil
	}
	return data, nil
}

// Snapshot returns the served collection, when it last changed, and the
// count of bookings that arrived since the last acknowledgement.
func (s *Synchronizer) Snapshot() ([]models.Booking, time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.lastUpdated, s.newCount
}

// AckNewBookings clears the new-bookings badge, as the manual refresh button
// does.
func (s *Synchronizer) AckNewBookings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newCount = 0
}

// LastError reports the error from the most recent manual or initial fetch.
func (s *Synchronizer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// PreviousCount exposes the count observed at the last completed fetch.
func (s *Synchronizer) PreviousCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prevCount
}
