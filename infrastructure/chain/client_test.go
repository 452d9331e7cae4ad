package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movelabhq/movelab/domain/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddress(t *testing.T, value string) contract.Address {
	t.Helper()
	addr, err := contract.NewAddress(value)
	require.NoError(t, err)
	return addr
}

func TestClient_Modules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/0x1/modules", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{
				"bytecode": "0xa11ce",
				"abi": {
					"address": "0x1",
					"name": "counter",
					"exposed_functions": [
						{"name": "increment", "visibility": "public", "is_entry": true, "is_view": false, "generic_type_params": [], "params": ["&signer"], "return": []},
						{"name": "get", "visibility": "public", "is_entry": false, "is_view": true, "generic_type_params": [], "params": ["address"], "return": ["u64"]}
					]
				}
			},
			{"bytecode": "0xdead", "abi": null}
		]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	modules, err := client.Modules(context.Background(), mustAddress(t, "0x1"))
	require.NoError(t, err)

	require.Len(t, modules, 1)
	assert.Equal(t, "counter", modules[0].Name())
	require.Len(t, modules[0].Functions(), 2)
	assert.Len(t, modules[0].ViewFunctions(), 1)
}

func TestClient_Modules_AccountNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "account not found", "error_code": "account_not_found"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	modules, err := client.Modules(context.Background(), mustAddress(t, "0x99"))
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestClient_Resources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/0x1/resources", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"type": "0x1::counter::Counter", "data": {"value": "42"}}
		]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	resources, err := client.Resources(context.Background(), mustAddress(t, "0x1"))
	require.NoError(t, err)

	require.Len(t, resources, 1)
	assert.Equal(t, "0x1::counter::Counter", resources[0].TypeTag())
	assert.JSONEq(t, `{"value": "42"}`, string(resources[0].Data()))
}

func TestClient_View(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/view", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body viewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0x1::counter::get", body.Function)
		assert.NotNil(t, body.TypeArguments)
		assert.NotNil(t, body.Arguments)

		_, _ = w.Write([]byte(`["42"]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	results, err := client.View(context.Background(), contract.ViewRequest{
		Function:  "0x1::counter::get",
		Arguments: []any{"0x1"},
	})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, `"42"`, string(results[0]))
}

func TestClient_NodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "internal error", "error_code": "internal_error"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	_, err := client.View(context.Background(), contract.ViewRequest{Function: "0x1::m::f"})
	require.Error(t, err)

	var nodeErr *NodeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, http.StatusInternalServerError, nodeErr.StatusCode)
	assert.Equal(t, "internal_error", nodeErr.ErrorCode)
	assert.False(t, IsNotFound(err))
}
