package models

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator registers decimal.Decimal so numeric tags (gte, lte) apply to
// money and quantity fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := d.Float64()
			return f
		case *decimal.Decimal:
			if d != nil {
				f, _ := d.Float64()
				return f
			}
		}
		return nil
	}, decimal.Decimal{}, &decimal.Decimal{})
	return v
}
