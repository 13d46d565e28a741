package models

import "time"

// QCInspection is an append-only inspection record. Inspections are never
// mutated or deleted; failed inspections do not block resubmission.
type QCInspection struct {
	ID             string    `db:"id" json:"id"`
	ProductionID   string    `db:"production_id" json:"productionId"`
	InspectorID    string    `db:"inspector_id" json:"inspectorId"`
	Passed         bool      `db:"passed" json:"passed"`
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	InspectorName  string    `db:"inspector_name" json:"inspectorName,omitempty"`
	InspectorEmail string    `db:"inspector_email" json:"inspectorEmail,omitempty"`
}

// RecordInspectionRequest is the QC payload for recording an inspection.
type RecordInspectionRequest struct {
	Passed *bool   `json:"passed" validate:"required"`
	Notes  *string `json:"notes"`
}
