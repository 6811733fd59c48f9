package models

// Address is an embedded value; it is copied wherever it is used.
type Address struct {
	City    string `json:"city" db:"city"`
	Street  string `json:"street" db:"street"`
	Zipcode string `json:"zipcode" db:"zipcode"`
}

// Member is the model for the 'members' table
type Member struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Address Address `json:"address"`
}
