package graphql_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphql "github.com/bjonica/graphql"
	"github.com/bjonica/graphql/execution"
)

func helloHandler() *graphql.Handler {
	s := graphql.MustBuildSchema(`
schema { query: Query subscription: Subscription }
type Query { hello: String }
type Subscription { tick: Int }
`)
	resolvers := execution.ResolverMap{"Query": {"hello": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) {
		return "world", nil
	}}}
	return graphql.NewHandler(s, resolvers)
}

func TestHandlerServesQueries(t *testing.T) {
	srv := httptest.NewServer(helloHandler())
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(`{"query":"{ hello }"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var payload struct {
		Data   map[string]interface{} `json:"data"`
		Errors []interface{}          `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Empty(t, payload.Errors)
	assert.Equal(t, "world", payload.Data["hello"])
}

func TestHandlerRejectsMissingQuery(t *testing.T) {
	srv := httptest.NewServer(helloHandler())
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(`{"operationName":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerRejectsNonPost(t *testing.T) {
	srv := httptest.NewServer(helloHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Sec-WebSocket-Protocol": []string{"graphql-ws"}})
	require.NoError(t, err)
	return conn
}

type wsFrame struct {
	ID      string                 `json:"id,omitempty"`
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWebsocketQueryRoundTrip(t *testing.T) {
	srv := httptest.NewServer(helloHandler())
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsFrame{Type: "connection_init"}))
	assert.Equal(t, "connection_ack", readFrame(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"id":      "1",
		"type":    "start",
		"payload": map[string]string{"query": `{ hello }`},
	}))

	data := readFrame(t, conn)
	assert.Equal(t, "data", data.Type)
	assert.Equal(t, "1", data.ID)
	assert.Equal(t, map[string]interface{}{"hello": "world"}, data.Payload["data"])

	assert.Equal(t, "complete", readFrame(t, conn).Type)
}

func TestWebsocketSubscription(t *testing.T) {
	h := helloHandler()
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsFrame{Type: "connection_init"}))
	assert.Equal(t, "connection_ack", readFrame(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"id":      "sub",
		"type":    "start",
		"payload": map[string]string{"query": `subscription { tick }`},
	}))

	// the subscription registers asynchronously; keep publishing until a
	// frame comes back
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(50 * time.Millisecond):
				_ = h.Bus().Publish(ctx, "tick", map[string]interface{}{"tick": 1})
			}
		}
	}()

	frame := readFrame(t, conn)
	assert.Equal(t, "data", frame.Type)
	assert.Equal(t, "sub", frame.ID)
	assert.Equal(t, map[string]interface{}{"tick": float64(1)}, frame.Payload["data"])

	require.NoError(t, conn.WriteJSON(wsFrame{ID: "sub", Type: "stop"}))
}

func TestBusFanOut(t *testing.T) {
	bus := graphql.NewBus()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := bus.Subscribe("tick")
	second := bus.Subscribe("tick")
	defer first.Shutdown(context.Background())
	defer second.Shutdown(context.Background())

	require.NoError(t, bus.Publish(ctx, "tick", map[string]interface{}{"tick": 7}))

	msg, err := first.Receive(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(msg.Body), `"tick":7`)
	msg.Ack()

	msg, err = second.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	require.NoError(t, bus.Shutdown(context.Background()))
}
