package command

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"
)

// Líneas de request más largas que esto se rechazan (1 MiB).
const maxLineBytes = 1 << 20

// Serve lee requests línea a línea de r y escribe una respuesta por línea
// en w. Cada request corre en su propia goroutine: una venta lenta no
// bloquea un reporte. Las respuestas pueden salir fuera de orden; el
// frontend las correlaciona por id. Retorna al agotarse la entrada o al
// cancelarse el contexto, tras drenar los requests en vuelo.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		wg sync.WaitGroup
		mu sync.Mutex // serializa las escrituras a w
	)
	enc := json.NewEncoder(w)

	write := func(resp Response) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(resp); err != nil {
			d.log.Error().Err(err).Msg("no se pudo escribir la respuesta")
		}
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		default:
		}

		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			write(d.Dispatch(ctx, line))
		}()
	}

	wg.Wait()
	return scanner.Err()
}
