package domain

// Client is a prospective tenant with rental preferences.
type Client struct {
	ClientNo  string
	FirstName *string
	LastName  *string
	Telephone *string
	Street    *string
	City      *string
	Email     *string
	PrefType  *string
	MaxRent   *float64
}

// ClientUpdate lists the mutable client columns; nil fields are left unchanged.
type ClientUpdate struct {
	ClientNo  string
	Telephone *string
	Email     *string
	PrefType  *string
	MaxRent   *float64
}
