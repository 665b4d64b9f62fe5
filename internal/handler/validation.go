package handler

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/hotel-backoffice/pkg/utils"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that understands decimal amounts and
// HH:MM times of day
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "decimal_gt", decimalCompare(func(d, limit decimal.Decimal) bool { return d.GreaterThan(limit) }))
	mustRegister(v, "decimal_gte", decimalCompare(func(d, limit decimal.Decimal) bool { return d.GreaterThanOrEqual(limit) }))
	mustRegister(v, "hhmm", func(fl validator.FieldLevel) bool {
		return utils.TimeOfDayPattern.MatchString(fl.Field().String())
	})

	return v
}

// mustRegister panics when tag cannot be registered
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func decimalCompare(cmp func(d, limit decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, limit)
	}
}
