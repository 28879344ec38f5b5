package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// El núcleo de movimientos la usa solo como destino referencial.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
