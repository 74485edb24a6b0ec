package wshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"

	"github.com/evidentia/opshub/internal/model"
)

type HandlerConfig struct {
	Logger         *slog.Logger
	MaxMessageSize int64
	MessageCb      func(name string, msg *model.ClientMessage)
	RemoveCb       func(name string)
}

// JSONWsHandler pumps JSON messages between one websocket and the hub.
// Outbound sends are buffered and dropped when the buffer is full, a slow
// session never blocks the hub. The remove callback fires exactly once no
// matter which path tears the connection down.
type JSONWsHandler struct {
	log            *slog.Logger
	name           string
	ws             *websocket.Conn
	ch             chan *model.WebMessage
	maxMessageSize int64
	messageCb      func(name string, msg *model.ClientMessage)
	removeCb       func(name string)
	active         int32
}

func NewHandler(name string, ws *websocket.Conn, conf *HandlerConfig) *JSONWsHandler {
	if conf == nil {
		conf = &HandlerConfig{}
	}

	logger := conf.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &JSONWsHandler{
		log:            logger.With("client", name),
		name:           name,
		ws:             ws,
		ch:             make(chan *model.WebMessage, 10),
		maxMessageSize: conf.MaxMessageSize,
		messageCb:      conf.MessageCb,
		removeCb:       conf.RemoveCb,
		active:         1,
	}
}

func (w *JSONWsHandler) GetName() string {
	return w.name
}

func (w *JSONWsHandler) IsActive() bool {
	return w != nil && atomic.LoadInt32(&w.active) == 1
}

func (w *JSONWsHandler) stop() {
	if atomic.CompareAndSwapInt32(&w.active, 1, 0) {
		close(w.ch)
		w.ws.Close()

		if w.removeCb != nil {
			w.removeCb(w.name)
		}
	}
}

func (w *JSONWsHandler) writer() {
	for item := range w.ch {
		if !w.IsActive() {
			return
		}

		if item == nil {
			continue
		}

		_ = w.ws.WriteJSON(item)
	}
}

func (w *JSONWsHandler) reader() {
	defer w.stop()

	if w.maxMessageSize > 0 {
		w.ws.SetReadLimit(w.maxMessageSize)
	}

	for {
		_, data, err := w.ws.ReadMessage()
		if err != nil {
			w.log.Debug("read stop", slog.Any("error", err))

			return
		}

		msg := new(model.ClientMessage)
		if err := json.Unmarshal(data, msg); err != nil {
			w.log.Warn("malformed message", slog.Any("error", err))

			continue
		}

		if w.messageCb != nil {
			w.messageCb(w.name, msg)
		}
	}
}

// SendMessage queues a message for delivery, dropping it when the session
// buffer is full. False means the session is gone.
func (w *JSONWsHandler) SendMessage(msg *model.WebMessage) bool {
	if w == nil || !w.IsActive() {
		return false
	}

	select {
	case w.ch <- msg:
	default:
	}

	return true
}

func (w *JSONWsHandler) closehandler(code int, text string) error {
	w.log.Info(fmt.Sprintf("closed with code %d, msg %s", code, text))
	w.stop()

	return nil
}

func (w *JSONWsHandler) Listen() {
	w.log.Debug("ws start")
	w.ws.SetCloseHandler(w.closehandler)

	go w.writer()
	w.reader()
	w.log.Debug("ws stop")
}
