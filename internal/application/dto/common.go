package dto

// CoreOutput bandera de éxito común a todas las respuestas.
type CoreOutput struct {
	OK bool `json:"ok"`
}

// ErrorResponse cuerpo de error HTTP: código estable + mensaje corto.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AccountOutput respuesta con una cuenta.
type AccountOutput struct {
	CoreOutput
	Account *AccountResponse `json:"account,omitempty"`
}

// LoginOutput respuesta de login.
type LoginOutput struct {
	CoreOutput
	Token string `json:"token,omitempty"`
}
