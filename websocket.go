package graphql

import (
	"context"
	encjson "encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bjonica/graphql/execution"
	"github.com/bjonica/graphql/system/ast"
)

// graphql-ws protocol frames.
const (
	wsProtocol = "graphql-ws"

	msgConnectionInit      = "connection_init"
	msgConnectionAck       = "connection_ack"
	msgConnectionTerminate = "connection_terminate"
	msgStart               = "start"
	msgStop                = "stop"
	msgData                = "data"
	msgError               = "error"
	msgComplete            = "complete"
)

type operationMessage struct {
	ID      string              `json:"id,omitempty"`
	Type    string              `json:"type"`
	Payload encjson.RawMessage `json:"payload,omitempty"`
}

type wsConn struct {
	h    *Handler
	conn *websocket.Conn

	writeMu sync.Mutex

	mu     sync.Mutex
	active map[string]context.CancelFunc
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &wsConn{h: h, conn: conn, active: make(map[string]context.CancelFunc)}
	c.loop(r.Context())
}

func (c *wsConn) loop(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		for _, cancel := range c.active {
			cancel()
		}
		c.mu.Unlock()
		c.conn.Close()
	}()

	for {
		var msg operationMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case msgConnectionInit:
			c.write(operationMessage{Type: msgConnectionAck})
		case msgStart:
			var p Params
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				c.writeErr(msg.ID, err.Error())
				continue
			}
			opCtx, cancel := context.WithCancel(ctx)
			c.mu.Lock()
			c.active[msg.ID] = cancel
			c.mu.Unlock()
			go c.run(opCtx, msg.ID, p)
		case msgStop:
			c.cancel(msg.ID)
		case msgConnectionTerminate:
			return
		}
	}
}

func (c *wsConn) cancel(id string) {
	c.mu.Lock()
	if cancel, ok := c.active[id]; ok {
		cancel()
		delete(c.active, id)
	}
	c.mu.Unlock()
}

// run executes one started operation. Queries and mutations answer with a
// single data frame; subscriptions re-execute the selection for every
// event published on the field's bus topic until stopped.
func (c *wsConn) run(ctx context.Context, id string, p Params) {
	defer c.cancel(id)

	res, err := Validate(c.h.schema, p.Query)
	if err != nil {
		c.writeErr(id, err.Error())
		return
	}
	if len(res.Errors) > 0 {
		c.writeResponse(id, &execution.Response{Errors: res.Errors})
		c.write(operationMessage{ID: id, Type: msgComplete})
		return
	}
	op, gerr := res.Doc.Operation(p.OperationName)
	if gerr != nil {
		c.writeErr(id, gerr.Message)
		return
	}

	if op.Operation != ast.Subscription {
		resp := execution.Execute(ctx, c.h.schema, c.h.resolvers, res.Doc, p.OperationName, p.Variables)
		c.writeResponse(id, resp)
		c.write(operationMessage{ID: id, Type: msgComplete})
		return
	}

	field, ok := subscriptionField(op)
	if !ok {
		c.writeErr(id, "Subscription must select exactly one top level field.")
		return
	}
	sub := c.h.bus.Subscribe(field)
	defer sub.Shutdown(context.Background())

	for {
		msg, err := sub.Receive(ctx)
		if err != nil {
			break
		}
		var payload map[string]interface{}
		if err := json.Unmarshal(msg.Body, &payload); err != nil {
			msg.Ack()
			continue
		}
		resp := execution.ExecuteRoot(ctx, c.h.schema, c.h.resolvers, res.Doc, p.OperationName, p.Variables, payload)
		c.writeResponse(id, resp)
		msg.Ack()
	}
	c.write(operationMessage{ID: id, Type: msgComplete})
}

func subscriptionField(op *ast.OperationDefinition) (string, bool) {
	if op.SelectionSet == nil || len(op.SelectionSet.Selections) != 1 {
		return "", false
	}
	f, ok := op.SelectionSet.Selections[0].(*ast.Field)
	if !ok {
		return "", false
	}
	return f.Name.Name, true
}

func (c *wsConn) write(msg operationMessage) {
	c.writeMu.Lock()
	_ = c.conn.WriteJSON(msg)
	c.writeMu.Unlock()
}

func (c *wsConn) writeResponse(id string, resp *execution.Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		c.writeErr(id, err.Error())
		return
	}
	c.write(operationMessage{ID: id, Type: msgData, Payload: payload})
}

func (c *wsConn) writeErr(id, message string) {
	payload, _ := json.Marshal(map[string]string{"message": message})
	c.write(operationMessage{ID: id, Type: msgError, Payload: payload})
}
