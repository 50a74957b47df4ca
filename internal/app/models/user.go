package models

type User struct {
	ID           string `bson:"_id,omitempty"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	Password     string `bson:"password"`
	Phone        string `bson:"phone,omitempty"`
	Role         string `bson:"role"`
	GoogleID     string `bson:"googleId,omitempty"`
	IsGoogleUser bool   `bson:"isGoogleUser,omitempty"`
	TimeModel    `bson:",inline"`
}
