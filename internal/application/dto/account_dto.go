package dto

import "time"

// CreateAccountRequest entrada para crear una cuenta (password en texto, se hashea en el use case).
type CreateAccountRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
	Role     string `json:"role" validate:"required,oneof=client owner delivery"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EditProfileRequest cambios opcionales de perfil; los campos nil no se tocan.
type EditProfileRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,maxbytes=72"`
}

// VerifyEmailRequest código recibido por correo.
type VerifyEmailRequest struct {
	Code string `json:"code" validate:"required"`
}

// AccountResponse salida de una cuenta (sin password).
type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token bearer emitido tras un login correcto.
type LoginResponse struct {
	Token string `json:"token"`
}
