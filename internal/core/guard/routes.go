// Package guard decides, from a session snapshot alone, whether a requested
// page may be entered and where to send the user otherwise.
package guard

import "strings"

const (
	RootPath         = "/"
	LoginPath        = "/login"
	RegisterPath     = "/cadastro"
	DashboardPath    = "/dashboard"
	UsersPath        = "/usuarios"
	VehiclesPath     = "/veiculos"
	CatalogPath      = "/veiculos-disponiveis"
	ReservationsPath = "/minhas-reservas"

	// ClientHome is where clients land and where they are sent back to when
	// they ask for a staff page.
	ClientHome = CatalogPath
)

// Route is a protected page section. Sub-paths share the section's tag.
type Route struct {
	Path             string
	ClientAccessible bool
}

// Protected lists every guarded section.
var Protected = []Route{
	{Path: DashboardPath},
	{Path: UsersPath},
	{Path: VehiclesPath},
	{Path: CatalogPath, ClientAccessible: true},
	{Path: ReservationsPath, ClientAccessible: true},
}

// Lookup returns the protected section that path belongs to.
func Lookup(path string) (Route, bool) {
	path = stripQuery(path)
	for _, r := range Protected {
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			return r, true
		}
	}
	return Route{}, false
}

// ClientAccessible reports whether clients may enter path.
func ClientAccessible(path string) bool {
	r, ok := Lookup(path)
	return ok && r.ClientAccessible
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}
