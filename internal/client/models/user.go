// Package models defines the data shapes shared by the ViviGo client: the
// user profile, derived session state and the backend wire types.
package models

// Role is the user's role as issued by the backend. Only RoleHost and
// RoleGuest drive client-side branching; other values are kept verbatim.
type Role string

const (
	RoleHost  Role = "ROL_Anfitrion"
	RoleGuest Role = "ROL_Huesped"
)

// User is the decoded identity of the signed-in user. It is persisted as
// JSON next to the token and is a UI hint only: the backend re-validates
// every privileged request.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Phone    string `json:"telefono,omitempty"`
	PhotoURL string `json:"fotoPerfil,omitempty"`

	BirthDate string `json:"fechaNacimiento,omitempty"`
	Language  string `json:"idioma,omitempty"`
}

func (u User) IsHost() bool  { return u.Role == RoleHost }
func (u User) IsGuest() bool { return u.Role == RoleGuest }

// SessionState is the derived view handed to observers and the render layer.
type SessionState struct {
	IsAuthenticated bool
	User            *User
}
