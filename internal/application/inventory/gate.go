package inventory

import "sync"

// ProductGate serializa las escrituras que afectan el balance de un
// producto. Toda secuencia leer-balance/escribir-movimiento adquiere el
// mutex del producto antes de leer y lo suelta después del commit (o del
// rollback), de modo que dos ventas del mismo producto nunca se intercalan.
// Ventas de productos distintos no se serializan entre sí.
//
// Los lectores (reportes, balances) no pasan por el gate: toleran
// consistencia eventual con escrituras en vuelo.
type ProductGate struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewProductGate construye el gate.
func NewProductGate() *ProductGate {
	return &ProductGate{locks: make(map[int64]*sync.Mutex)}
}

// Lock adquiere la sección crítica del producto y devuelve la función que
// la libera. Llamar siempre con defer para cubrir también los caminos de
// error de almacenamiento.
//
// Las entradas del mapa no se liberan: el tamaño queda acotado por el
// catálogo, no por el volumen de operaciones.
func (g *ProductGate) Lock(productID int64) (unlock func()) {
	g.mu.Lock()
	l, ok := g.locks[productID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[productID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}
