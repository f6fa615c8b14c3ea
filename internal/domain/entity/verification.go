package entity

import "time"

// Verification código de un solo uso que confirma el email de una Account.
// Se crea al registrarse o al cambiar el email y se elimina al canjearse.
type Verification struct {
	ID        string
	Code      string
	AccountID string
	Account   *Account // cargada por GetByCode (join); nil en el resto de lecturas
	CreatedAt time.Time
}
