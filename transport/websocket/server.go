package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

var errBadPayload = errors.New("bad payload")

type gameUseCase interface {
	MakeTurn(ctx context.Context, pos entity.Position) (*usecase.TurnResult, error)
	Reset(ctx context.Context) (tictactoe.Snapshot, error)
	SetStrategy(ctx context.Context, kind strategy.Kind, seed *int64) (tictactoe.Snapshot, error)
	Game() tictactoe.Snapshot
}

type handler func(ctx context.Context, msg *Message) (any, error)

// Server upgrades /ws requests and dispatches their messages to the game.
type Server struct {
	logger   *slog.Logger
	hub      *Hub
	game     gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, hub *Hub, game gameUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "ws"),
		hub:      hub,
		game:     game,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}

	server.handlers = map[string]handler{
		actionState:    server.handleState,
		actionTurn:     server.handleTurn,
		actionReset:    server.handleReset,
		actionStrategy: server.handleStrategy,
	}

	return server
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP", "remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	that.hub.register(c)
	// the first message tells the client where the match stands
	that.reply(c, actionState, that.game.Game())
	log.Info("client connected")

	go writePump(c)

	that.readLoop(r.Context(), c)

	that.hub.unregister(c)
	log.Info("client disconnected")
}

func (that *Server) readLoop(ctx context.Context, c *client) {
	log := that.logger.With("method", "readLoop")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed", "error", err)
			}
			return
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			that.replyError(c, "", fmt.Errorf("%w: %w", errBadPayload, err))
			continue
		}

		handle, ok := that.handlers[msg.Action]
		if !ok {
			that.replyError(c, msg.Action, fmt.Errorf("unknown action %q", msg.Action))
			continue
		}

		payload, err := handle(ctx, &msg)
		if err != nil {
			log.Debug("action failed", "action", msg.Action, "error", err)
			that.replyError(c, msg.Action, err)
			continue
		}

		that.reply(c, msg.Action, payload)
	}
}

func (that *Server) handleState(context.Context, *Message) (any, error) {
	return that.game.Game(), nil
}

func (that *Server) handleTurn(ctx context.Context, msg *Message) (any, error) {
	var req turnPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPayload, err)
	}

	if req.Row == nil || req.Col == nil {
		return nil, fmt.Errorf("%w: row and col are required", errBadPayload)
	}

	return that.game.MakeTurn(ctx, entity.Position{Row: *req.Row, Col: *req.Col})
}

func (that *Server) handleReset(ctx context.Context, _ *Message) (any, error) {
	return that.game.Reset(ctx)
}

func (that *Server) handleStrategy(ctx context.Context, msg *Message) (any, error) {
	var req strategyPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPayload, err)
	}

	kind, err := strategy.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	return that.game.SetStrategy(ctx, kind, req.Seed)
}

func (that *Server) reply(c *client, action string, payload any) {
	data, err := encode(action, payload)
	if err != nil {
		that.logger.Error("failed to marshal reply", "action", action, "error", err)
		return
	}

	if !c.enqueue(data) {
		that.logger.Warn("client is too slow, reply dropped", "action", action)
	}
}

func (that *Server) replyError(c *client, action string, err error) {
	that.reply(c, actionError, errorPayload{Action: action, Error: err.Error()})
}

// writePump owns all writes to the connection and pings it when idle.
func writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
