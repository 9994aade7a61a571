package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// RegisterValidators installs the custom binding tags on gin's validator.
// notfuture rejects times after clock.Now().
func RegisterValidators(clock coreport.TimeProvider) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}

	return v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(clock.Now())
	})
}
