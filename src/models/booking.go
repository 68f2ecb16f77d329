package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"rephotos/src/types"
	"time"

	"github.com/tidwall/gjson"
)

// Address is the canonical structured form of a property address. Persisted
// rows may carry it either as a jsonb object or as a doubly-encoded JSON
// string; both shapes normalize here on ingress. Malformed data yields an
// empty Address, never an error.
type Address struct {
	Street   string `json:"street"`
	Street2  string `json:"street2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province"`
	ZipCode  string `json:"zipCode"`
}

func (a Address) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}

func (a *Address) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	*a = parseAddress(b)
	return nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	*a = parseAddress(data)
	return nil
}

func parseAddress(data []byte) Address {
	type plain Address
	var out plain
	r := gjson.ParseBytes(data)
	if r.Type == gjson.String {
		r = gjson.Parse(r.String())
	}
	if !r.IsObject() {
		return Address{}
	}
	if err := json.Unmarshal([]byte(r.Raw), &out); err != nil {
		return Address{}
	}
	return Address(out)
}

// SelectedService is one line in a booking's service selection: a catalog (or
// custom) entry with a captured price and a count. Insertion order is
// display order.
type SelectedService struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
}

type ServiceList []SelectedService

func (l ServiceList) Value() (driver.Value, error) {
	if l == nil {
		l = ServiceList{}
	}
	valueString, err := json.Marshal(l)
	return string(valueString), err
}

func (l *ServiceList) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	*l = parseServices(b)
	return nil
}

func (l *ServiceList) UnmarshalJSON(data []byte) error {
	*l = parseServices(data)
	return nil
}

func parseServices(data []byte) ServiceList {
	var out []SelectedService
	r := gjson.ParseBytes(data)
	if r.Type == gjson.String {
		r = gjson.Parse(r.String())
	}
	if !r.IsArray() {
		return ServiceList{}
	}
	if err := json.Unmarshal([]byte(r.Raw), &out); err != nil {
		return ServiceList{}
	}
	return out
}

type Booking struct {
	ID             string              `gorm:"primarykey" json:"id"`
	AgentName      string              `json:"agent_name"`
	AgentEmail     string              `json:"agent_email"`
	AgentPhone     string              `json:"agent_phone,omitempty"`
	AgentCompany   string              `json:"agent_company,omitempty"`
	Address        Address             `gorm:"type:jsonb" json:"address"`
	PropertySize   string              `json:"property_size"`
	PropertyStatus string              `json:"property_status,omitempty"`
	Services       ServiceList         `gorm:"type:jsonb" json:"services"`
	TotalAmount    float64             `json:"total_amount"`
	Notes          string              `json:"notes,omitempty"`
	PreferredDate  string              `json:"preferred_date"`
	Time           string              `json:"time,omitempty"`
	Status         types.BookingStatus `json:"status,omitempty"`
	PaymentStatus  types.PaymentStatus `json:"payment_status,omitempty"`
	EditingStatus  types.EditingStatus `json:"editing_status,omitempty"`

	RawPhotosLink    string `json:"raw_photos_link,omitempty"`
	FinalEditsLink   string `json:"final_edits_link,omitempty"`
	TourLink         string `json:"tour_link,omitempty"`
	EditorLink       string `json:"editor_link,omitempty"`
	DeliveryPageLink string `json:"delivery_page_link,omitempty"`
	InvoiceLink      string `json:"invoice_link,omitempty"`

	DeliveryEmailSent bool    `json:"delivery_email_sent,omitempty"`
	UserID            *string `json:"user_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
}
