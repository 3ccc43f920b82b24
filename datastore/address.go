package datastore

import "strings"

// Address is the postal address shared by personnel and client records.
type Address struct {
	AddressID  NullInt64 `json:"address_id"`
	Street     string    `json:"street"`
	Barangay   string    `json:"barangay"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	PostalCode string    `json:"postal_code"`
}

// HasLocation reports whether any of the street, barangay, city or province is set.
// The postal code alone is not enough to create an address row.
func (a Address) HasLocation() bool {
	return a.Street != "" || a.Barangay != "" || a.City != "" || a.Province != ""
}

// Line joins the non-empty location parts with ", ".
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.Barangay, a.City, a.Province} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ", ")
}
