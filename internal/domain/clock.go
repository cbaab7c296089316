package domain

import "time"

// Clock abstrae la hora actual para que las ventanas de agregación
// (tendencia de N días, totales de hoy) sean deterministas en tests.
type Clock interface {
	Now() time.Time
}

// SystemClock usa el reloj del sistema.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
