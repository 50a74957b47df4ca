package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"email":            "must be a valid email address",
	"min":              "must be at least %s characters long",
	"max":              "must be at most %s characters long",
	"oneof":            "must be one of: %s",
	"gt":               "must be greater than %s",
	"slot_date":        "must use the DD_MM_YYYY format",
	"slot_time":        "must use the 24-hour HH:MM format",
	"appointment_type": "must be either virtual or in-person",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
}
