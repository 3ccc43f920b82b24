package datastore

import "context"

type Gender struct {
	GenderID   int64  `json:"gender_id"`
	GenderName string `json:"gender_name"`
}

type CivilStatus struct {
	CivilStatusID int64  `json:"civilstatus_id"`
	Title         string `json:"title"`
}

type ClientType struct {
	ClientTypeID int64  `json:"clienttype_id"`
	Title        string `json:"title"`
}

type AssignmentStatus struct {
	StatusID   int64  `json:"status_id"`
	StatusName string `json:"status_name"`
}

// LookupStore reads the small reference tables that back the dashboard dropdowns.
type LookupStore interface {
	Genders(ctx context.Context) ([]Gender, error)
	CivilStatuses(ctx context.Context) ([]CivilStatus, error)
	ClientTypes(ctx context.Context) ([]ClientType, error)
	AssignmentStatuses(ctx context.Context) ([]AssignmentStatus, error)
}
