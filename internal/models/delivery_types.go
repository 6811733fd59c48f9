package models

// DeliveryStatus tracks shipment progress.
type DeliveryStatus string

const (
	DeliveryReady     DeliveryStatus = "READY"
	DeliveryCompleted DeliveryStatus = "COMPLETED"
)

// Delivery is the model for the 'deliveries' table.
// It is created together with its order and never on its own.
type Delivery struct {
	ID      int64          `json:"id" db:"id"`
	Address Address        `json:"address"`
	Status  DeliveryStatus `json:"status" db:"status"`
}
