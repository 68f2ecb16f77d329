package types

// BookingStatus is the workflow state of the shoot itself. It varies
// independently from payment and editing status.
type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_EDITING   BookingStatus = "editing"
	BOOKING_DELIVERED BookingStatus = "delivered"
	BOOKING_COMPLETED BookingStatus = "completed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PAYMENT_NOT_PAID PaymentStatus = "not_paid"
	PAYMENT_PAID     PaymentStatus = "paid"
	PAYMENT_REFUNDED PaymentStatus = "refunded"
)

type EditingStatus string

const (
	EDITING_UNASSIGNED  EditingStatus = "unassigned"
	EDITING_IN_EDITING  EditingStatus = "in_editing"
	EDITING_WITH_EDITOR EditingStatus = "with_editor"
	EDITING_DONE        EditingStatus = "done_editing"
)

// OccupancyStatusOptions are the accepted property occupancy values.
var OccupancyStatusOptions = []string{"Vacant", "Occupied", "Tenanted", "Other"}

type SendEmailRequestBody struct {
	To        string `json:"to" binding:"required,email"`
	Subject   string `json:"subject" binding:"required"`
	Html      string `json:"html" binding:"required"`
	BookingID string `json:"booking_id,omitempty"`
}

type CreateFoldersRequestBody struct {
	BookingID       string `json:"booking_id" binding:"required"`
	PropertyAddress struct {
		Street   string `json:"street" binding:"required"`
		Street2  string `json:"street2,omitempty"`
		City     string `json:"city,omitempty"`
		Province string `json:"province,omitempty"`
		ZipCode  string `json:"zipCode,omitempty"`
	} `json:"property_address" binding:"required"`
	AgentName string `json:"agent_name" binding:"required"`
}

type StatusPatchRequestBody struct {
	ID            string `json:"id" binding:"required"`
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	EditingStatus string `json:"editing_status,omitempty"`
}

type QuoteServiceEntry struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
}

type QuoteRequestBody struct {
	PropertySize string              `json:"property_size,omitempty"`
	Services     []QuoteServiceEntry `json:"services" binding:"required"`
}
