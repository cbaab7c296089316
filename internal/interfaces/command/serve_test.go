package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vitasport-core/internal/interfaces/command"
)

func TestServeOneResponsePerLine(t *testing.T) {
	d, _ := buildDispatcher(t)

	input := strings.Join([]string{
		`{"id":"a","command":"auth.login","payload":{"username":"admin","password":"admin"}}`,
		``, // líneas vacías se ignoran
		`{"id":"b","command":"no.existe"}`,
		`basura que no es json`,
	}, "\n")

	var out bytes.Buffer
	err := d.Serve(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3, "una respuesta por request, la línea vacía no cuenta")

	// Las respuestas pueden llegar en cualquier orden; se indexan por id.
	byID := make(map[string]command.Response)
	var unmatched []command.Response
	for _, line := range lines {
		var resp command.Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		if resp.ID != "" {
			byID[resp.ID] = resp
		} else {
			unmatched = append(unmatched, resp)
		}
	}

	require.Contains(t, byID, "a")
	assert.True(t, byID["a"].Success)

	require.Contains(t, byID, "b")
	assert.Equal(t, command.CodeUnknownCommand, byID["b"].Error.Code)

	require.Len(t, unmatched, 1, "el request imparseable responde sin id")
	assert.Equal(t, command.CodeInvalidRequest, unmatched[0].Error.Code)
}
