package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canteen-sim/canteen-sim/sim"
)

// dialTestServer starts a websocket server around handleWebSocket and
// connects a client to it.
func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandleWebSocket_RunRoundTrip(t *testing.T) {
	conn := dialTestServer(t)

	// the server greets with the default configuration
	var greeting ServerMessage
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, "defaults", greeting.Type)
	require.NotNil(t, greeting.Config)
	assert.Equal(t, sim.DefaultConfig().Population, greeting.Config.Population)

	// WHEN a small run is requested
	cfg := sim.DefaultConfig()
	cfg.Population = 20
	cfg.Seed = 5
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "run", Config: &cfg}))

	// THEN the reply carries the summary and one record per entity
	var reply ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "result", reply.Type)
	require.NotNil(t, reply.Summary)
	assert.Equal(t, 20, reply.Summary.TotalServed)
	assert.Len(t, reply.Records, 20)
}

func TestHandleWebSocket_InvalidConfigReportsError(t *testing.T) {
	conn := dialTestServer(t)

	var greeting ServerMessage
	require.NoError(t, conn.ReadJSON(&greeting))

	cfg := sim.DefaultConfig()
	cfg.Population = -1
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "run", Config: &cfg}))

	// the connection stays open and the error is reported in-band
	var reply ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.NotEmpty(t, reply.Error)
}

func TestHandleWebSocket_UnknownCommand(t *testing.T) {
	conn := dialTestServer(t)

	var greeting ServerMessage
	require.NoError(t, conn.ReadJSON(&greeting))

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "teleport"}))

	var reply ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Error, "teleport")
}
