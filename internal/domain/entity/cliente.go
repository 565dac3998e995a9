package entity

import "time"

// Cliente representa un cliente facturable.
// El borrado es lógico: Activo pasa a false y el registro se conserva
// para no romper las facturas que lo referencian.
type Cliente struct {
	ID        string
	Nombre    string
	Email     string // único
	Telefono  string // opcional
	RFCCuit   string // identificación tributaria (RFC/CUIT), única; se trata como string opaco
	Direccion string // opcional
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
