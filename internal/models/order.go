package models

import "time"

// OrderStatus enumerates the production order state machine.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether the value is a member of the enum.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ProductionOrder represents a manufacturing order. The reference number is
// assigned at creation and immutable afterwards.
type ProductionOrder struct {
	ID          string      `db:"id" json:"id"`
	ReferenceNo string      `db:"reference_no" json:"referenceNo"`
	ModelName   string      `db:"model_name" json:"modelName"`
	Quantity    int         `db:"quantity" json:"quantity"`
	Status      OrderStatus `db:"status" json:"status"`
	CreatedBy   string      `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// OrderSummary is a list row: the order plus its creator and the earliest
// inspection outcome, when one exists.
type OrderSummary struct {
	ProductionOrder
	CreatorName        string     `db:"creator_name" json:"creatorName"`
	CreatorEmail       string     `db:"creator_email" json:"creatorEmail"`
	FirstInspectionOK  *bool      `db:"first_inspection_passed" json:"firstInspectionPassed,omitempty"`
	FirstInspectionAt  *time.Time `db:"first_inspection_at" json:"firstInspectionAt,omitempty"`
	FirstInspectorName *string    `db:"first_inspector_name" json:"firstInspectorName,omitempty"`
}

// OrderDetail is the single-order view: available for COMPLETED orders only,
// with the full inspection history attached.
type OrderDetail struct {
	ProductionOrder
	CreatorName  string         `db:"creator_name" json:"creatorName"`
	CreatorEmail string         `db:"creator_email" json:"creatorEmail"`
	Inspections  []QCInspection `db:"-" json:"qcInspections"`
}

// CreateOrderRequest is the operator payload for creating an order.
type CreateOrderRequest struct {
	ModelName string `json:"modelName" validate:"required,min=3"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateOrderStatusRequest carries a manual status transition. Any of the
// four states is accepted, including backward moves; the permissiveness is
// intentional.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}
