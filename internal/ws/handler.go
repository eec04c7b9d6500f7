package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	recordTimeout = 2 * time.Second
)

// Conn is the part of *websocket.Conn the handler uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	session *Session
	ws      Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, session *Session) *Handler {
	return &Handler{session: session, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "session", h.session.ID(), "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "session", h.session.ID(), "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// readLoop feeds incoming messages to the handler. It cancels the session context when reading fails,
// so a disconnect also ends a pending CPU delay.
func (h *Handler) readLoop(ctx context.Context, cancel context.CancelFunc, incoming chan<- *Incoming, readErr chan<- error) {
	defer cancel()

	for {
		req, err := h.readMessage()
		if err != nil {
			readErr <- err
			return
		}

		select {
		case incoming <- req:
		case <-ctx.Done():
			return
		}
	}
}

// Handle handles the websocket connection until the client disconnects or ctx is done.
func (h *Handler) Handle(ctx context.Context) error {
	slog.Info("ws session started", "session", h.session.ID())
	defer slog.Info("ws session ended", "session", h.session.ID())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	incoming := make(chan *Incoming)
	readErr := make(chan error, 1)

	go h.readLoop(ctx, cancel, incoming, readErr)

	for {
		select {
		case req := <-incoming:
			if err := h.session.HandleMessage(ctx, req, h.writeMessage); err != nil {
				return fmt.Errorf("ws handle error: %w", err)
			}
		case err := <-readErr:
			return err
		case <-ctx.Done():
			// readLoop reports its error before cancelling
			select {
			case err := <-readErr:
				return err
			default:
				return ctx.Err()
			}
		}
	}
}
