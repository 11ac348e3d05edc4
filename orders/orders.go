package orders

// StatusType is an order's fulfilment state. Admin screens move orders
// through these states with partial (status-only) updates.
type StatusType string

const (
	StatusPending    StatusType = "pending"
	StatusProcessing StatusType = "processing"
	StatusShipped    StatusType = "shipped"
	StatusDelivered  StatusType = "delivered"
	StatusCancelled  StatusType = "cancelled"
)

// PaymentStatusType tracks the payment side of an order.
type PaymentStatusType string

const (
	PaymentPending  PaymentStatusType = "pending"
	PaymentPaid     PaymentStatusType = "paid"
	PaymentFailed   PaymentStatusType = "failed"
	PaymentRefunded PaymentStatusType = "refunded"
)

// Item is a single product line within an order.
type Item struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order mirrors the backend's order resource.
type Order struct {
	ID            string            `json:"id,omitempty"`
	OrderID       string            `json:"order_id,omitempty"`
	UserID        string            `json:"user_id,omitempty"`
	Items         []Item            `json:"items,omitempty"`
	Subtotal      float64           `json:"subtotal"`
	Shipping      float64           `json:"shipping"`
	TotalAmount   float64           `json:"total_amount"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Status        StatusType        `json:"status,omitempty"`
	PaymentStatus PaymentStatusType `json:"payment_status,omitempty"`
}

// ValidStatus reports whether s is one of the recognised fulfilment states.
func ValidStatus(s StatusType) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
