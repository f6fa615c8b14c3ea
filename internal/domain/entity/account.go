package entity

import (
	"fmt"
	"time"
)

// Role rol de la cuenta dentro del marketplace. Conjunto cerrado.
type Role string

// Roles válidos para Account.
const (
	RoleClient   Role = "client"
	RoleOwner    Role = "owner"
	RoleDelivery Role = "delivery"
)

// Roles lista los roles aceptados, en el orden en que se documentan.
var Roles = []Role{RoleClient, RoleOwner, RoleDelivery}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleOwner, RoleDelivery:
		return true
	}
	return false
}

// ParseRole convierte un string en Role; error si no es uno de los roles válidos.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("rol desconocido %q", s)
	}
	return r, nil
}

// Account representa una cuenta del marketplace (cliente, dueño de restaurante o repartidor).
type Account struct {
	ID           string
	Email        string // único entre todas las cuentas
	PasswordHash string // bcrypt hash, nunca plano después de crear/editar
	Role         Role   // inmutable después de la creación
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChangeEmail asigna un nuevo email. Si cambia, la cuenta vuelve a quedar sin verificar.
// Devuelve true cuando el email efectivamente cambió.
func (a *Account) ChangeEmail(email string) bool {
	if email == "" || email == a.Email {
		return false
	}
	a.Email = email
	a.Verified = false
	return true
}

// ChangePassword reemplaza el hash almacenado.
func (a *Account) ChangePassword(hash string) {
	a.PasswordHash = hash
}

// MarkVerified pasa la cuenta al estado verificado.
func (a *Account) MarkVerified() {
	a.Verified = true
}
