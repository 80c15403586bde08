package domain

// Address is a delivery address attached to a customer profile.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// User is the profile the agency backend returns at login.
type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Role           Role     `json:"role"`
	Area           string   `json:"area,omitempty"`
	DefaultAddress *Address `json:"defaultAddress,omitempty"`
}

// Session pairs the backend bearer token with the profile it was issued
// for. The pair is indivisible: a token without a profile (or the
// reverse) is treated everywhere as no session at all.
type Session struct {
	ID    string
	Token string
	User  User
}

// CachedSession holds the session snapshot kept in the read cache.
type CachedSession struct {
	Token string
	User  User
}
