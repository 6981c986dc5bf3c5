package graphql

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/execution"
	"github.com/bjonica/graphql/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler serves GraphQL over HTTP POST and, for subscriptions, over a
// websocket upgrade on the same endpoint.
type Handler struct {
	schema    *schema.Schema
	resolvers execution.ResolverMap
	bus       *Bus
	check     *validator.Validate
	upgrader  websocket.Upgrader
}

type HandlerOption func(*Handler)

// WithBus connects the handler to an existing event bus so the host can
// publish subscription events.
func WithBus(bus *Bus) HandlerOption {
	return func(h *Handler) { h.bus = bus }
}

func NewHandler(s *schema.Schema, resolvers execution.ResolverMap, opts ...HandlerOption) *Handler {
	h := &Handler{
		schema:    s,
		resolvers: resolvers,
		check:     validator.New(),
		upgrader: websocket.Upgrader{
			Subprotocols: []string{wsProtocol},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.bus == nil {
		h.bus = NewBus()
	}
	return h
}

// Bus exposes the handler's event bus for publishers.
func (h *Handler) Bus() *Bus {
	return h.bus
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		h.serveWS(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var p Params
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, pkgerrors.Wrap(err, "decode request"))
		return
	}
	if err := h.check.Struct(p); err != nil {
		writeError(w, http.StatusBadRequest, pkgerrors.Wrap(err, "invalid request"))
		return
	}

	resp := Do(h.schema, h.resolvers, p, WithContext(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(&execution.Response{
		Errors: errors.MultiError{errors.New("%s", err.Error())},
	})
}
