package domain

import "testing"

func TestSession_Normalize(t *testing.T) {
	s := Session{User: &User{Email: "a@b.c"}}.Normalize()
	if s.User != nil {
		t.Fatal("user without token must be dropped")
	}
	if s.Authenticated() {
		t.Fatal("empty token is not authenticated")
	}

	s = Session{Token: "t", User: &User{Email: "a@b.c"}}.Normalize()
	if s.User == nil || !s.Authenticated() {
		t.Fatal("token and user must be kept together")
	}
}

func TestPlaceholderUser(t *testing.T) {
	u := PlaceholderUser("maria@loccar.com")
	if u.Username != "maria" || u.Email != "maria@loccar.com" {
		t.Fatalf("unexpected placeholder: %+v", u)
	}
	if u.Role != RoleCliente {
		t.Fatalf("placeholder role should be Cliente, got %q", u.Role)
	}
	if u.DriverLicense != "" || u.CellPhone != "" {
		t.Fatal("placeholder must not invent profile data")
	}

	if got := PlaceholderUser("no-at-sign").Username; got != "no-at-sign" {
		t.Fatalf("unexpected username: %q", got)
	}
}

func TestUser_Clone(t *testing.T) {
	var nilUser *User
	if nilUser.Clone() != nil {
		t.Fatal("clone of nil must be nil")
	}
	u := &User{Email: "a@b.c"}
	c := u.Clone()
	c.Email = "x@y.z"
	if u.Email != "a@b.c" {
		t.Fatal("clone shares state with the original")
	}
}

func TestRentalDays(t *testing.T) {
	days, err := RentalDays("2026-03-01", "2026-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %d", days)
	}

	for _, tc := range [][2]string{
		{"2026-03-04", "2026-03-04"},
		{"2026-03-05", "2026-03-04"},
		{"03/01/2026", "2026-03-04"},
		{"2026-03-01", ""},
	} {
		if _, err := RentalDays(tc[0], tc[1]); err != ErrInvalidReservation {
			t.Errorf("RentalDays(%q, %q): expected ErrInvalidReservation, got %v", tc[0], tc[1], err)
		}
	}
}
