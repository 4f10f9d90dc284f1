package domain

import (
	"encoding/json"
	"strings"
)

// Role is the single authorization attribute of a user.
type Role string

const (
	RoleUnknown     Role = ""
	RoleAdmin       Role = "Admin"
	RoleFuncionario Role = "Funcionario"
	RoleCliente     Role = "Cliente"
	RoleClientUser  Role = "ClientUser"
)

// rawRoles maps every identifier the backend has been seen to send, upper-cased
// and stripped of the ROLE_ prefix, onto the closed set of roles.
var rawRoles = map[string]Role{
	"ADMIN":         RoleAdmin,
	"ADMINISTRATOR": RoleAdmin,
	"FUNCIONARIO":   RoleFuncionario,
	"EMPLOYEE":      RoleFuncionario,
	"STAFF":         RoleFuncionario,
	"CLIENTE":       RoleCliente,
	"CLIENT":        RoleCliente,
	"CUSTOMER":      RoleCliente,
	"CLIENT_USER":   RoleClientUser,
	"CLIENTUSER":    RoleClientUser,
}

// ParseRole normalises one raw backend role identifier. Unrecognised values
// map to RoleUnknown.
func ParseRole(raw string) Role {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.TrimPrefix(key, "ROLE_")
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	return rawRoles[key]
}

// RoleFromClaims picks the first recognised role from a list of raw
// identifiers, as sent in a "roles" array.
func RoleFromClaims(raws []string) Role {
	for _, r := range raws {
		if role := ParseRole(r); role != RoleUnknown {
			return role
		}
	}
	return RoleUnknown
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFuncionario, RoleCliente, RoleClientUser:
		return true
	}
	return false
}

// IsClient reports whether r only has access to the client area.
func (r Role) IsClient() bool {
	return r == RoleCliente || r == RoleClientUser
}

// IsStaff reports whether r has access to every protected route.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleFuncionario
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}

// UnmarshalJSON accepts either a single identifier or an array of them, so a
// persisted or backend-supplied role always lands in the closed set.
func (r *Role) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*r = ParseRole(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*r = RoleFromClaims(many)
	return nil
}
