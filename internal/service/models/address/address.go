package address

import "time"

// CreateAddressModel is the caller's input for address creation.
type CreateAddressModel struct {
	UserID int64  `json:"userId"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// UpdateAddressModel carries a partial update: zero fields are left untouched.
type UpdateAddressModel struct {
	UserID int64  `json:"userId"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Address represents a shipping address owned by a user.
type Address struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
