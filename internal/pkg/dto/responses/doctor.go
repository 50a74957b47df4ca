package responses

type Doctor struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Image      string        `json:"image,omitempty"`
	Speciality string        `json:"speciality"`
	Degree     string        `json:"degree"`
	Experience string        `json:"experience"`
	About      string        `json:"about"`
	Fees       int64         `json:"fees"`
	Address    DoctorAddress `json:"address"`
	Available  bool          `json:"available"`
}

type DoctorAddress struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
}

// DaySlots lists the free start times of one calendar day.
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

type Slot struct {
	Time        string `json:"time"`
	DisplayTime string `json:"displayTime"`
}
