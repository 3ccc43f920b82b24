package datastore

import "context"

// Personnel is a guard (or other staff member) employed by the agency.
type Personnel struct {
	PersonnelID   int64     `json:"personnel_id"`
	Name          string    `json:"personnel_name"`
	Age           NullInt64 `json:"personnel_age"`
	CivilStatusID NullInt64 `json:"civilstatus_id"`
	GenderID      NullInt64 `json:"gender_id"`
	ContactNo     string    `json:"contact_no"`
	Email         string    `json:"email"`
	CivilStatus   string    `json:"civil_status"`
	Gender        string    `json:"gender"`
	Address
	AddressLine string `json:"address"`
}

// PersonnelInput carries the writable fields of a personnel record, including
// its address parts.
type PersonnelInput struct {
	Name          string    `json:"personnel_name" validate:"required,max=255"`
	Age           NullInt64 `json:"personnel_age" validate:"omitempty,gte=16,lte=100"`
	CivilStatusID NullInt64 `json:"civilstatus_id" validate:"omitempty,gt=0"`
	GenderID      NullInt64 `json:"gender_id" validate:"omitempty,gt=0"`
	ContactNo     string    `json:"contact_no" validate:"max=50"`
	Email         string    `json:"email" validate:"omitempty,email,max=255"`
	Address
}

// PersonnelStore manages personnel records.
type PersonnelStore interface {
	// List returns personnel ordered by newest first. A non-empty search is matched
	// case-insensitively against name, email and contact number.
	List(ctx context.Context, search string) ([]Personnel, error)
	Get(ctx context.Context, id int64) (Personnel, error)
	Create(ctx context.Context, in PersonnelInput) (Personnel, error)
	Update(ctx context.Context, id int64, in PersonnelInput) (Personnel, error)
	Delete(ctx context.Context, id int64) error
}
