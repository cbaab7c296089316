package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los casos de uso y los
// handlers distinguen la clase de error con errors.Is / errors.As; nunca
// comparando strings formateados.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrSKUTaken          = errors.New("el SKU ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrHasMovements      = errors.New("el producto tiene movimientos o ventas asociados")
	ErrStorage           = errors.New("error de almacenamiento")
	ErrConsistency       = errors.New("inconsistencia interna del ledger")
)

// ValidationError describe una entrada malformada: cantidad no positiva,
// tipo de movimiento desconocido, campo obligatorio ausente. Se rechaza
// siempre antes de cualquier escritura.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: campo %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError se produce cuando una venta pide más unidades de
// las que el ledger respalda. Lleva el balance observado para que la UI
// pueda mostrarlo. Se rechaza atómicamente: ningún registro queda escrito.
type InsufficientStockError struct {
	ProductID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %d: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// StorageError envuelve un fallo del store subyacente. No se enmascara ni
// se reintenta: se propaga tal cual al caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("almacenamiento: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return ErrStorage }

// Cause expone el error original del driver para diagnóstico.
func (e *StorageError) Cause() error { return e.Err }

// ConsistencyFault señala un estado que la atomicidad venta+egreso hace
// imposible por construcción: balance derivado negativo, o una venta sin su
// movimiento emparejado. Es un bug de programación o de datos, no un estado
// de negocio: se loguea en nivel error y nunca se corrige en silencio.
type ConsistencyFault struct {
	ProductID int64
	Detail    string
}

func (e *ConsistencyFault) Error() string {
	return fmt.Sprintf("inconsistencia en producto %d: %s", e.ProductID, e.Detail)
}

func (e *ConsistencyFault) Unwrap() error { return ErrConsistency }
