package common

import (
	"context"
	"math"
	"regexp"
	"strings"

	"rephotos/src/config"
	"rephotos/src/models"
	"rephotos/src/types"
)

var (
	timeRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// MoveDirection selects which neighbour a service swaps with on reorder.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)

// EditSession is the in-memory draft of one booking being edited in the
// detail view. The draft mutates field by field; persisted holds the last
// known-saved row. Discarding the session discards unsaved edits.
type EditSession struct {
	store     BookingStore
	draft     models.Booking
	persisted models.Booking
}

func NewEditSession(store BookingStore, booking models.Booking) *EditSession {
	return &EditSession{
		store:     store,
		draft:     booking,
		persisted: booking,
	}
}

func (s *EditSession) Draft() models.Booking {
	return s.draft
}

func (s *EditSession) Persisted() models.Booking {
	return s.persisted
}

// ReplaceDraft swaps in a whole draft, as when the detail form posts its full
// state. The persisted row's identity is kept and catalog prices reconcile if
// the size category moved.
func (s *EditSession) ReplaceDraft(draft models.Booking) {
	draft.ID = s.persisted.ID
	sizeChanged := draft.PropertySize != s.draft.PropertySize
	s.draft = draft
	if sizeChanged {
		s.onCategoryChange()
	}
}

// SetField overwrites one scalar draft field by its wire name. Unknown names
// are ignored; no validation happens here, the two format contracts are
// enforced at save time.
func (s *EditSession) SetField(name, value string) {
	switch name {
	case "agent_name":
		s.draft.AgentName = value
	case "agent_email":
		s.draft.AgentEmail = value
	case "agent_phone":
		s.draft.AgentPhone = value
	case "agent_company":
		s.draft.AgentCompany = value
	case "notes":
		s.draft.Notes = value
	case "preferred_date":
		s.draft.PreferredDate = value
	case "time":
		s.draft.Time = value
	case "property_status":
		s.draft.PropertyStatus = value
	case "status":
		s.draft.Status = types.BookingStatus(value)
	case "payment_status":
		s.draft.PaymentStatus = types.PaymentStatus(value)
	case "editing_status":
		s.draft.EditingStatus = types.EditingStatus(value)
	case "raw_photos_link":
		s.draft.RawPhotosLink = value
	case "final_edits_link":
		s.draft.FinalEditsLink = value
	case "tour_link":
		s.draft.TourLink = value
	case "editor_link":
		s.draft.EditorLink = value
	case "delivery_page_link":
		s.draft.DeliveryPageLink = value
	case "invoice_link":
		s.draft.InvoiceLink = value
	case "property_size":
		s.draft.PropertySize = value
		s.onCategoryChange()
	}
}

// AddService selects a catalog service: new names insert at the head with
// count 1, existing ones increment. Names absent from the resolved catalog
// are ignored.
func (s *EditSession) AddService(name string) {
	price, ok := CatalogPrice(s.draft.PropertySize, name)
	if !ok {
		return
	}
	idx := s.findService(name)
	if idx > -1 {
		s.draft.Services[idx].Count = countOrOne(s.draft.Services[idx].Count) + 1
	} else {
		entry := models.SelectedService{Name: name, Price: price, Count: 1}
		s.draft.Services = append(models.ServiceList{entry}, s.draft.Services...)
	}
	s.recomputeTotal()
}

// RemoveService decrements the named entry, dropping it entirely at count 1.
func (s *EditSession) RemoveService(name string) {
	idx := s.findService(name)
	if idx == -1 {
		return
	}
	if countOrOne(s.draft.Services[idx].Count) > 1 {
		s.draft.Services[idx].Count--
	} else {
		s.draft.Services = append(s.draft.Services[:idx], s.draft.Services[idx+1:]...)
	}
	s.recomputeTotal()
}

func (s *EditSession) IncrementService(name string) {
	idx := s.findService(name)
	if idx == -1 {
		return
	}
	s.draft.Services[idx].Count = countOrOne(s.draft.Services[idx].Count) + 1
	s.recomputeTotal()
}

func (s *EditSession) DecrementService(name string) {
	s.RemoveService(name)
}

// AddCustomService inserts a non-catalog entry at the head with count 1.
// Blank names and invalid or negative prices are rejected as no-ops.
func (s *EditSession) AddCustomService(name string, price float64) bool {
	name = strings.TrimSpace(name)
	if name == "" || math.IsNaN(price) || price < 0 {
		return false
	}
	entry := models.SelectedService{Name: name, Price: price, Count: 1}
	s.draft.Services = append(models.ServiceList{entry}, s.draft.Services...)
	s.recomputeTotal()
	return true
}

// Reorder swaps the entry at index with its neighbour in the given
// direction. Out-of-range indices are no-ops.
func (s *EditSession) Reorder(index int, dir MoveDirection) {
	services := s.draft.Services
	switch dir {
	case MoveUp:
		if index <= 0 || index >= len(services) {
			return
		}
		services[index-1], services[index] = services[index], services[index-1]
	case MoveDown:
		if index < 0 || index >= len(services)-1 {
			return
		}
		services[index], services[index+1] = services[index+1], services[index]
	}
	s.recomputeTotal()
}

// onCategoryChange re-resolves the catalog for the draft's size category and
// rewrites the captured price of every matching service whose catalog price
// moved. Custom or unmatched services keep their captured price.
func (s *EditSession) onCategoryChange() {
	for i, svc := range s.draft.Services {
		price, ok := CatalogPrice(s.draft.PropertySize, svc.Name)
		if ok && price != svc.Price {
			s.draft.Services[i].Price = price
		}
	}
	s.recomputeTotal()
}

// Save validates the time and date format contracts, normalizes the date to
// a full datetime, and upserts the whole draft as a one-element batch. On
// success both draft and persisted adopt the server-returned row; on failure
// the draft is retained untouched.
func (s *EditSession) Save(ctx context.Context) (models.Booking, error) {
	record := s.draft

	if record.Time != "" {
		switch len(record.Time) {
		case 5:
			record.Time = record.Time + ":00"
		case 8:
			if !timeRegex.MatchString(record.Time) {
				return models.Booking{}, &FormatError{Field: "time", Reason: "use HH:mm:ss (24-hour)"}
			}
		default:
			return models.Booking{}, &FormatError{Field: "time", Reason: "use HH:mm or HH:mm:ss"}
		}
	}

	if record.PreferredDate != "" {
		if !dateRegex.MatchString(record.PreferredDate) {
			return models.Booking{}, &FormatError{Field: "preferred_date", Reason: "use YYYY-MM-DD"}
		}
		record.PreferredDate = record.PreferredDate + config.DATE_TIME_SUFFIX
	}

	rows, err := s.store.Upsert(ctx, []models.Booking{record})
	if err != nil {
		return models.Booking{}, err
	}
	if len(rows) == 0 {
		return models.Booking{}, &ValidationError{Reason: "no data returned after update"}
	}
	s.persisted = rows[0]
	s.draft = rows[0]
	return rows[0], nil
}

func (s *EditSession) findService(name string) int {
	for i, svc := range s.draft.Services {
		if svc.Name == name {
			return i
		}
	}
	return -1
}

func (s *EditSession) recomputeTotal() {
	s.draft.TotalAmount = AggregateTotal(s.draft.Services)
}

func countOrOne(count int) int {
	if count < 1 {
		return 1
	}
	return count
}
