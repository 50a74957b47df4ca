package models

// Doctor keeps its booked slots denormalized on the document itself: a map from
// a DD_MM_YYYY date key to the HH:MM times already taken on that day. Slot
// reservation and release are done with conditional updates against this map.
type Doctor struct {
	ID          string              `bson:"_id,omitempty"`
	UserID      string              `bson:"userId"`
	Name        string              `bson:"name"`
	Email       string              `bson:"email"`
	Image       string              `bson:"image,omitempty"`
	Speciality  string              `bson:"speciality"`
	Degree      string              `bson:"degree"`
	Experience  string              `bson:"experience"`
	About       string              `bson:"about"`
	Fees        int64               `bson:"fees"`
	Address     DoctorAddress       `bson:"address"`
	Available   bool                `bson:"available"`
	SlotsBooked map[string][]string `bson:"slots_booked"`
	TimeModel   `bson:",inline"`
}

type DoctorAddress struct {
	Line1 string `bson:"line1"`
	Line2 string `bson:"line2,omitempty"`
}

// BookedTimesOn returns the taken HH:MM times for a DD_MM_YYYY date key.
func (d *Doctor) BookedTimesOn(dateKey string) []string {
	if d.SlotsBooked == nil {
		return nil
	}
	return d.SlotsBooked[dateKey]
}
