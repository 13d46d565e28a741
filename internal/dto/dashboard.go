package dto

// ProductionRollup counts orders by terminal bucket created since the start
// of the current month.
type ProductionRollup struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Cancelled int `json:"cancelled"`
}

// InspectionRollup counts pass/fail inspections recorded since the start of
// the current month.
type InspectionRollup struct {
	PassedCount int `json:"passedCount"`
	FailedCount int `json:"failedCount"`
}

// UserRollup counts users per role.
type UserRollup struct {
	Admin    int `json:"admin"`
	QC       int `json:"qc"`
	Operator int `json:"operator"`
}
