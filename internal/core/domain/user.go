package domain

import "strings"

// User is the profile of the person holding the session.
type User struct {
	ID            string `json:"id,omitempty"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	DriverLicense string `json:"driverLicense"`
	CellPhone     string `json:"cellPhone"`
	Role          Role   `json:"role"`
}

// PlaceholderUser is used when login succeeded but the profile could not be
// hydrated. Only the email is known.
func PlaceholderUser(email string) *User {
	username := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		username = email[:at]
	}
	return &User{
		Username:      username,
		Email:         email,
		DriverLicense: "",
		CellPhone:     "",
		Role:          RoleCliente,
	}
}

// Clone returns a copy that can be handed out without sharing state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
