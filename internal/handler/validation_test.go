package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/hotel-backoffice/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewValidator(t *testing.T) {
	assert.NotPanics(t, func() { newValidator() })

	v := newValidator()
	tests := []struct {
		name    string
		charge  domain.Charge
		isValid bool
	}{
		{name: "positive amount", charge: domain.Charge{Description: "Spa", Amount: decimal.NewFromInt(40)}, isValid: true},
		{name: "zero amount", charge: domain.Charge{Description: "Spa"}, isValid: false},
		{name: "negative amount", charge: domain.Charge{Description: "Spa", Amount: decimal.NewFromInt(-1)}, isValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.charge)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMustRegister_PanicsOnRejectedTag(t *testing.T) {
	v := validator.New()
	always := func(fl validator.FieldLevel) bool { return true }

	assert.NotPanics(t, func() { mustRegister(v, "always", always) })
	assert.Panics(t, func() { mustRegister(v, "", always) })
}
