package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/evidentia/opshub/internal/model"
	"github.com/evidentia/opshub/internal/registry"
)

type EventKind byte

const (
	EventLogin EventKind = iota
	EventLocation
	EventRadio
	EventDisconnect
)

func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventLocation:
		return "location"
	case EventRadio:
		return "radio"
	case EventDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind   EventKind
	ConnID string
	Fields map[string]any
	Radio  *model.RadioMessage
}

// Session is one connected websocket from the hub's point of view. Sends are
// best-effort, a false return means the message was dropped or the session
// is gone.
type Session interface {
	GetName() string
	SendMessage(msg *model.WebMessage) bool
}

// RadioStore is the append-only durable log for transmissions. The hub only
// writes to it, always from a detached goroutine.
type RadioStore interface {
	WriteRadio(rec *model.RadioLog) error
}

// Hub owns the connection registry and processes all presence and radio
// events on a single goroutine, so registry mutation and broadcast emission
// are serialized without further locking.
type Hub struct {
	logger   *slog.Logger
	registry *registry.Registry
	store    RadioStore
	sessions sync.Map
	ch       chan Event
	wg       sync.WaitGroup
}

func New(store RadioStore) *Hub {
	return &Hub{
		logger:   slog.With("logger", "hub"),
		registry: registry.New(),
		store:    store,
		ch:       make(chan Event, 20),
	}
}

func (h *Hub) Registry() *registry.Registry {
	return h.registry
}

// Run drains the event channel until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Debug("hub start")

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("hub stop")

			return
		case e := <-h.ch:
			h.processEvent(e)
		}
	}
}

// AddSession registers a connected websocket. No registry entry is created
// until the session sends a login.
func (h *Hub) AddSession(s Session) {
	if s == nil {
		return
	}

	h.sessions.Store(s.GetName(), s)
	connectionsMetric.Inc()
}

func (h *Hub) Login(connID string, fields map[string]any) {
	h.ch <- Event{Kind: EventLogin, ConnID: connID, Fields: fields}
}

func (h *Hub) LocationUpdate(connID string, fields map[string]any) {
	h.ch <- Event{Kind: EventLocation, ConnID: connID, Fields: fields}
}

func (h *Hub) Radio(connID string, msg *model.RadioMessage) {
	h.ch <- Event{Kind: EventRadio, ConnID: connID, Radio: msg}
}

func (h *Hub) Disconnect(connID string) {
	h.ch <- Event{Kind: EventDisconnect, ConnID: connID}
}

// HandleMessage dispatches a decoded client message from the transport.
func (h *Hub) HandleMessage(connID string, msg *model.ClientMessage) {
	if msg == nil {
		return
	}

	switch msg.Typ {
	case model.MsgTypeLogin:
		h.Login(connID, msg.Data)
	case model.MsgTypeLocation:
		h.LocationUpdate(connID, msg.Data)
	case model.MsgTypeRadio:
		h.Radio(connID, msg.Radio)
	default:
		h.logger.Warn("unknown message type " + msg.Typ)
	}
}

func (h *Hub) processEvent(e Event) {
	eventsMetric.WithLabelValues(e.Kind.String()).Inc()

	switch e.Kind {
	case EventLogin:
		h.registry.Store(model.NewUnit(e.ConnID, e.Fields))
		h.broadcastUnits()
	case EventLocation:
		// a location update with no prior login is silently ignored
		if !h.registry.Has(e.ConnID) {
			h.logger.Debug("location update before login", slog.String("conn", e.ConnID))

			return
		}

		h.registry.Upsert(e.ConnID, e.Fields)
		h.broadcastUnits()
	case EventRadio:
		h.relayRadio(e.ConnID, e.Radio)
	case EventDisconnect:
		if _, ok := h.sessions.LoadAndDelete(e.ConnID); ok {
			connectionsMetric.Dec()
		}

		h.registry.Remove(e.ConnID)
		h.broadcastUnits()
	}
}

func (h *Hub) broadcastUnits() {
	msg := model.UnitsMessage(h.registry.Snapshot())

	h.ForAllSessions(func(s Session) bool {
		if !s.SendMessage(msg) {
			droppedMetric.Inc()
		}

		return true
	})
}

// relayRadio fans a transmission out and appends the durable log row. Voice
// skips the originating session (it has local playback), text goes to
// everyone including the sender. The broadcast never waits on the store.
func (h *Hub) relayRadio(from string, msg *model.RadioMessage) {
	if msg == nil {
		return
	}

	kind := "text"
	if msg.IsVoice {
		kind = "voice"
	}

	radioMetric.WithLabelValues(kind).Inc()

	web := model.RadioWebMessage(msg)

	h.ForAllSessions(func(s Session) bool {
		if msg.IsVoice && s.GetName() == from {
			return true
		}

		if !s.SendMessage(web) {
			droppedMetric.Inc()
		}

		return true
	})

	h.writeLog(msg)
}

func (h *Hub) writeLog(msg *model.RadioMessage) {
	if h.store == nil {
		return
	}

	rec := msg.ToLog()

	h.wg.Add(1)

	go func() {
		defer h.wg.Done()

		if err := h.store.WriteRadio(rec); err != nil {
			logFailMetric.Inc()
			h.logger.Error("radio log write failed", slog.Any("error", err))
		}
	}()
}

func (h *Hub) ForAllSessions(f func(s Session) bool) {
	h.sessions.Range(func(_, value any) bool {
		s := value.(Session)

		return f(s)
	})
}
