package requests

type CreateDoctor struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Image      string `json:"image,omitempty" validate:"omitempty,url"`
	Speciality string `json:"speciality" validate:"required"`
	Degree     string `json:"degree" validate:"required"`
	Experience string `json:"experience" validate:"required"`
	About      string `json:"about" validate:"required"`
	Fees       int64  `json:"fees" validate:"required,gt=0"`
	Address    struct {
		Line1 string `json:"line1" validate:"required"`
		Line2 string `json:"line2,omitempty"`
	} `json:"address"`
}