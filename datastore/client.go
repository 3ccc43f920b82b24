package datastore

import "context"

// Client is a business that contracts the agency for security services.
type Client struct {
	ClientID      int64     `json:"client_id"`
	BusinessName  string    `json:"business_name"`
	ContactPerson string    `json:"contact_person"`
	ContactNo     string    `json:"contact_no"`
	Email         string    `json:"email"`
	ClientTypeID  NullInt64 `json:"clienttype_id"`
	ClientType    string    `json:"client_type"`
	Address
	AddressLine string `json:"address"`
}

// ClientInput carries the writable fields of a client record.
type ClientInput struct {
	BusinessName  string    `json:"business_name" validate:"required,max=255"`
	ContactPerson string    `json:"contact_person" validate:"max=255"`
	ContactNo     string    `json:"contact_no" validate:"max=50"`
	Email         string    `json:"email" validate:"omitempty,email,max=255"`
	ClientTypeID  NullInt64 `json:"clienttype_id" validate:"omitempty,gt=0"`
	Address
}

// ClientStore manages client records.
type ClientStore interface {
	List(ctx context.Context, search string) ([]Client, error)
	Get(ctx context.Context, id int64) (Client, error)
	Create(ctx context.Context, in ClientInput) (Client, error)
	Update(ctx context.Context, id int64, in ClientInput) (Client, error)
	Delete(ctx context.Context, id int64) error
}
