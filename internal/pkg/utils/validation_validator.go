package utils

import (
	"regexp"
	"time"

	"medilink-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("slot_date", validateSlotDate)
	validate.RegisterValidation("slot_time", validateSlotTime)
	validate.RegisterValidation("appointment_type", validateAppointmentType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSlotDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !regexp.MustCompile(constvars.RegexSlotDate).MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.SlotDateLayout, value)
	return err == nil
}

func validateSlotTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !regexp.MustCompile(constvars.RegexSlotTime).MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.SlotTimeLayout, value)
	return err == nil
}

func validateAppointmentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.AppointmentTypeVirtual || value == constvars.AppointmentTypeInPerson
}
