package api

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rqa-security/guardhouse/datastore"
)

// newValidator returns a validator that reports fields by their JSON names and sees
// through the nullable and decimal types of the datastore: an unset Date or NullInt64
// counts as missing, a decimal is compared as a number.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(datastore.Date)
		if !ok || d.IsZero() {
			return nil
		}

		return d.Time
	}, datastore.Date{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		n, ok := field.Interface().(datastore.NullInt64)
		if !ok || !n.Valid {
			return nil
		}

		return n.Int64
	}, datastore.NullInt64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}

		return d.InexactFloat64()
	}, decimal.Decimal{})

	return v
}
