package constvars

const (
	RegexEmail    = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexSlotDate = `^\d{2}_\d{2}_\d{4}$`
	RegexSlotTime = `^\d{2}:\d{2}$`
)
