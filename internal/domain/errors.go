package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Son los únicos errores que la capa de aplicación devuelve hacia afuera.
var (
	ErrAccountExists        = errors.New("ya existe una cuenta con ese email")
	ErrAccountNotFound      = errors.New("cuenta no encontrada")
	ErrInvalidCredentials   = errors.New("contraseña incorrecta")
	ErrInvalidRole          = errors.New("rol inválido")
	ErrInvalidToken         = errors.New("token inválido o expirado")
	ErrVerificationNotFound = errors.New("código de verificación no encontrado")

	// Fallos genéricos por operación: ocultan la causa de infraestructura.
	ErrCreateAccountFailed = errors.New("no se pudo crear la cuenta")
	ErrLoginFailed         = errors.New("no se pudo iniciar sesión")
	ErrFindAccountFailed   = errors.New("no se pudo obtener la cuenta")
	ErrUpdateProfileFailed = errors.New("no se pudo actualizar el perfil")
	ErrVerifyEmailFailed   = errors.New("no se pudo verificar el email")
)
