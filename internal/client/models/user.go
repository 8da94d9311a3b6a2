package models

// User is the signed-in account as shown in the dashboard. The zero value
// means "no user".
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// IsEmpty reports whether u is the "no user" placeholder.
func (u User) IsEmpty() bool {
	return u == User{}
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
