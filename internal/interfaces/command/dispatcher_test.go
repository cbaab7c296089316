package command_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vitasport-core/internal/application/auth"
	"github.com/jhoicas/vitasport-core/internal/application/catalog"
	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/application/sales"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/vitasport-core/internal/interfaces/command"
	"github.com/jhoicas/vitasport-core/pkg/config"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

// buildDispatcher arma un dispatcher completo sobre una base en memoria.
func buildDispatcher(t *testing.T) (*command.Dispatcher, *sql.DB) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.Nop()
	clock := domain.SystemClock{}
	gate := inventory.NewProductGate()
	runner := sqlite.NewTxRunner(db)
	productRepo := sqlite.NewProductRepository(db)
	movRepo := sqlite.NewStockMovementRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	jwtCfg := config.JWTConfig{Secret: "secreto-de-test", Expiration: 60, Issuer: "vitasport-test"}
	authUC := auth.NewUseCase(userRepo, jwtCfg, log)
	inventoryUC := inventory.NewUseCase(runner, gate, productRepo, movRepo, clock, log)
	salesUC := sales.NewUseCase(runner, gate, productRepo, saleRepo, clock, log)
	catalogUC := catalog.NewUseCase(productRepo, movRepo, saleRepo, log)

	d := command.NewDispatcher(authUC, log)
	command.NewAuthHandler(authUC).Register(d)
	command.NewProductHandler(catalogUC).Register(d)
	command.NewInventoryHandler(inventoryUC).Register(d)
	command.NewSalesHandler(salesUC).Register(d)
	return d, db
}

// dispatch arma y ejecuta un request, devolviendo la respuesta.
func dispatch(t *testing.T, d *command.Dispatcher, id, cmd, token string, payload any) command.Response {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id": id, "command": cmd, "token": token, "payload": payload,
	})
	require.NoError(t, err)
	return d.Dispatch(context.Background(), raw)
}

// login devuelve un token del admin sembrado.
func login(t *testing.T, d *command.Dispatcher) string {
	t.Helper()
	resp := dispatch(t, d, "login-1", "auth.login", "", map[string]string{
		"username": "admin", "password": "admin",
	})
	require.True(t, resp.Success, "el login del admin sembrado debe funcionar: %+v", resp.Error)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestDispatchMalformedLine(t *testing.T) {
	d, _ := buildDispatcher(t)

	resp := d.Dispatch(context.Background(), []byte("esto no es json"))
	assert.False(t, resp.Success)
	assert.Equal(t, command.CodeInvalidRequest, resp.Error.Code)
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, _ := buildDispatcher(t)

	resp := dispatch(t, d, "r1", "no.existe", "", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, command.CodeUnknownCommand, resp.Error.Code)
	assert.Equal(t, "r1", resp.ID, "la respuesta conserva el id del request")
}

func TestDispatchRequiresToken(t *testing.T) {
	d, _ := buildDispatcher(t)

	resp := dispatch(t, d, "r1", "products.list", "", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, command.CodeUnauthorized, resp.Error.Code)

	resp = dispatch(t, d, "r2", "products.list", "token-falso", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, command.CodeUnauthorized, resp.Error.Code)
}

func TestDispatchAdminOnlyCommands(t *testing.T) {
	d, _ := buildDispatcher(t)
	adminToken := login(t, d)

	// Crear un vendedor y loguearlo.
	resp := dispatch(t, d, "r1", "users.create", adminToken, map[string]string{
		"username": "vendedor", "password": "clave", "role": "Vendedor",
	})
	require.True(t, resp.Success, "%+v", resp.Error)

	resp = dispatch(t, d, "r2", "auth.login", "", map[string]string{
		"username": "vendedor", "password": "clave",
	})
	require.True(t, resp.Success)
	data, _ := json.Marshal(resp.Data)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &body))

	resp = dispatch(t, d, "r3", "users.list", body.Token, nil)
	assert.False(t, resp.Success, "un vendedor no administra usuarios")
	assert.Equal(t, command.CodeUnauthorized, resp.Error.Code)

	resp = dispatch(t, d, "r4", "products.list", body.Token, nil)
	assert.True(t, resp.Success, "pero sí consulta el catálogo")
}

func TestDispatchValidationErrors(t *testing.T) {
	d, _ := buildDispatcher(t)
	token := login(t, d)

	resp := dispatch(t, d, "r1", "stock.move", token, map[string]any{
		"product_id": 1, "type": "ajuste", "quantity": 5,
	})
	assert.False(t, resp.Success)
	assert.Equal(t, command.CodeValidation, resp.Error.Code)

	resp = dispatch(t, d, "r2", "products.create", token, map[string]any{"name": ""})
	assert.False(t, resp.Success)
	assert.Equal(t, command.CodeValidation, resp.Error.Code)
}

func TestDispatchSaleFlowEnvelope(t *testing.T) {
	d, _ := buildDispatcher(t)
	token := login(t, d)

	resp := dispatch(t, d, "r1", "products.create", token, map[string]any{
		"name": "Proteína Whey", "sale_price": "75.50",
	})
	require.True(t, resp.Success, "%+v", resp.Error)
	data, _ := json.Marshal(resp.Data)
	var product struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &product))

	resp = dispatch(t, d, "r2", "stock.move", token, map[string]any{
		"product_id": product.ID, "type": "ingreso", "quantity": 28,
	})
	require.True(t, resp.Success, "%+v", resp.Error)

	// Venta que excede el balance: error con los números que vio.
	resp = dispatch(t, d, "r3", "sales.record", token, map[string]any{
		"product_id": product.ID, "quantity": 30,
	})
	require.False(t, resp.Success)
	assert.Equal(t, command.CodeInsufficientStock, resp.Error.Code)
	require.NotNil(t, resp.Error.Available)
	require.NotNil(t, resp.Error.Requested)
	assert.Equal(t, int64(28), *resp.Error.Available)
	assert.Equal(t, int64(30), *resp.Error.Requested)

	// Venta válida.
	resp = dispatch(t, d, "r4", "sales.record", token, map[string]any{
		"product_id": product.ID, "quantity": 10,
	})
	require.True(t, resp.Success, "%+v", resp.Error)

	resp = dispatch(t, d, "r5", "inventory.balances", token, nil)
	require.True(t, resp.Success)
	data, _ = json.Marshal(resp.Data)
	var items []struct {
		Product struct {
			ID int64 `json:"id"`
		} `json:"product"`
		Stock int64 `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(18), items[0].Stock, fmt.Sprintf("28 − 10; items: %+v", items))
}
