package validation

import (
	"audease/internal/scheduling"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustom adds the wire-format validators the booking DTOs use:
// "timehhmm" for zero-padded 24h clock values and "datestamp" for
// calendar dates.
func RegisterCustom() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("timehhmm", func(fl validator.FieldLevel) bool {
		_, err := scheduling.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("datestamp", func(fl validator.FieldLevel) bool {
		_, err := scheduling.ParseDateStamp(fl.Field().String())
		return err == nil
	})
}
