package models

import "encoding/json"

// Profile is the user record served by /api/usuarios/{id} and returned
// after a profile update. Unlike User it uses the backend's field names.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	Phone     string `json:"telefono,omitempty"`
	Photo     string `json:"foto,omitempty"`
	BirthDate string `json:"fechaNacimiento,omitempty"`
	Language  string `json:"idioma,omitempty"`
	Role      Role   `json:"rol,omitempty"`
}

// WithProfile returns a copy of u with the editable fields taken from p.
// Identity fields (ID, Email, Role) stay as decoded from the token, and
// empty values in p never blank out what u already holds.
func (u User) WithProfile(p *Profile) User {
	if p == nil {
		return u
	}
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	if p.Photo != "" {
		u.PhotoURL = p.Photo
	}
	if p.BirthDate != "" {
		u.BirthDate = p.BirthDate
	}
	if p.Language != "" {
		u.Language = p.Language
	}
	return u
}

type UpdateProfileRequest struct {
	Name      string `json:"nombre"`
	Phone     string `json:"telefono,omitempty"`
	BirthDate string `json:"fechaNacimiento,omitempty"`
	Language  string `json:"idioma,omitempty"`
	Photo     string `json:"foto,omitempty"`
}

type ChangePasswordRequest struct {
	Current string `json:"contrasenaActual"`
	New     string `json:"contrasenaNueva"`
}

// HostProfile is the host-only data kept under /api/usuarios/anfitrion/{id}.
// The backend reads the description as "descripcion" but serves it back as
// "sobreMi"; both are accepted when decoding.
type HostProfile struct {
	Description  string   `json:"descripcion"`
	Experience   string   `json:"experiencia"`
	ResponseTime string   `json:"tiempoRespuesta"`
	Services     []string `json:"servicios"`
	BankAccount  string   `json:"cuentaBancaria"`
}

func (h *HostProfile) UnmarshalJSON(data []byte) error {
	type plain HostProfile
	var aux struct {
		plain
		AboutMe string `json:"sobreMi"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*h = HostProfile(aux.plain)
	if h.Description == "" {
		h.Description = aux.AboutMe
	}
	return nil
}
