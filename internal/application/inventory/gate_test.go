package inventory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vitasport-core/internal/application/inventory"
)

func TestProductGateMutualExclusion(t *testing.T) {
	gate := inventory.NewProductGate()

	var counter, max int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := gate.Lock(1)
			defer unlock()

			mu.Lock()
			counter++
			if counter > max {
				max = counter
			}
			mu.Unlock()

			mu.Lock()
			counter--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, max, "nunca debe haber dos secciones críticas activas para el mismo producto")
}

func TestProductGateIndependentProducts(t *testing.T) {
	gate := inventory.NewProductGate()

	// Con el producto 1 bloqueado, el producto 2 no espera.
	unlock1 := gate.Lock(1)
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := gate.Lock(2)
		unlock2()
		close(done)
	}()
	<-done
}
