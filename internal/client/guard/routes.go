// Package guard decides whether the signed-in user may open a view. It
// holds the client's route table and asks the session on every
// navigation; nothing is cached.
package guard

import "strings"

// Access is the level a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
	HostOnly
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case HostOnly:
		return "host"
	default:
		return "unknown"
	}
}

// Route is one entry of the route table. Pattern segments starting with
// ':' match any single non-empty segment.
type Route struct {
	Pattern string
	Title   string
	Access  Access
}

// Routes is the client's route table. Legacy *.html paths are kept as
// aliases of their views.
var Routes = []Route{
	{Pattern: "/", Title: "CloudHouse - Inicio", Access: Public},
	{Pattern: "/login", Title: "Iniciar Sesión", Access: Public},
	{Pattern: "/register", Title: "Registrarse", Access: Public},
	{Pattern: "/search", Title: "Buscar Alojamientos", Access: Public},
	{Pattern: "/details/:id", Title: "Detalles del Alojamiento", Access: Public},

	{Pattern: "/profile", Title: "Mi Perfil", Access: Authenticated},
	{Pattern: "/profile_edit", Title: "Mi Perfil", Access: Authenticated},
	{Pattern: "/booking", Title: "Mis Reservas", Access: Authenticated},
	{Pattern: "/booking.html", Title: "Mis Reservas", Access: Authenticated},
	{Pattern: "/favorites", Title: "Favoritos", Access: Authenticated},

	{Pattern: "/host-dashboard", Title: "Panel de Anfitrión", Access: HostOnly},
	{Pattern: "/dashboard.html", Title: "Panel de Anfitrión", Access: HostOnly},
	{Pattern: "/host-accommodations", Title: "Mis Alojamientos", Access: HostOnly},
	{Pattern: "/host_accommodations.html", Title: "Mis Alojamientos", Access: HostOnly},
	{Pattern: "/host-form", Title: "Publicar Alojamiento", Access: HostOnly},
	{Pattern: "/host_form.html", Title: "Publicar Alojamiento", Access: HostOnly},
}

// Match finds the route for path. The query string is ignored.
func Match(path string) (Route, bool) {
	path, _, _ = strings.Cut(path, "?")
	got := segments(path)

	for _, r := range Routes {
		want := segments(r.Pattern)
		if len(want) != len(got) {
			continue
		}
		ok := true
		for i := range want {
			if strings.HasPrefix(want[i], ":") {
				if got[i] == "" {
					ok = false
					break
				}
				continue
			}
			if want[i] != got[i] {
				ok = false
				break
			}
		}
		if ok {
			return r, true
		}
	}
	return Route{}, false
}

func segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
