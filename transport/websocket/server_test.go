package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	controller, err := tictactoe.NewGameController(
		tictactoe.NewHuman(entity.X, ""),
		tictactoe.NewAgent(entity.O, strategy.NewSmart()),
		entity.X,
	)
	require.NoError(t, err)

	hub := NewHub(logger)
	manager := usecase.NewGameManager(logger, controller, repository.NewMemoryScoreRepository(), hub)

	srv := httptest.NewServer(New(logger, hub, manager))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	return srv, hub
}

// dial connects and consumes the initial state message.
func dial(t *testing.T, srv *httptest.Server) (*websocket.Conn, tictactoe.Snapshot) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	msg := read(t, conn)
	require.Equal(t, actionState, msg.Action)

	var game tictactoe.Snapshot
	require.NoError(t, json.Unmarshal(msg.Payload, &game))

	return conn, game
}

func send(t *testing.T, conn *websocket.Conn, action, payload string) {
	t.Helper()

	msg := Message{Action: action}
	if payload != "" {
		msg.Payload = json.RawMessage(payload)
	}

	require.NoError(t, conn.WriteJSON(msg))
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	return msg
}

func TestServer_Connect(t *testing.T) {
	srv, hub := newTestServer(t)

	_, game := dial(t, srv)

	assert.Equal(t, tictactoe.StateAwaitingX, game.State)
	assert.Equal(t, 1, hub.Clients())
}

func TestServer_Turn(t *testing.T) {
	t.Run("Moves are broadcast before the reply", func(t *testing.T) {
		// Given: a player and a spectator
		srv, _ := newTestServer(t)
		player, _ := dial(t, srv)
		spectator, _ := dial(t, srv)

		// When: the player takes a corner
		send(t, player, actionTurn, `{"row":0,"col":0}`)

		// Then: both see the two moves and the player gets the turn result
		for _, conn := range []*websocket.Conn{player, spectator} {
			for _, want := range []entity.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}} {
				msg := read(t, conn)
				require.Equal(t, usecase.EventMove, msg.Action)

				var move tictactoe.MoveResult
				require.NoError(t, json.Unmarshal(msg.Payload, &move))
				assert.Equal(t, want, move.Move)
			}
		}

		msg := read(t, player)
		require.Equal(t, actionTurn, msg.Action)

		var turn usecase.TurnResult
		require.NoError(t, json.Unmarshal(msg.Payload, &turn))
		assert.Len(t, turn.Moves, 2)
		assert.Equal(t, 2, turn.Game.MoveCount)
	})

	t.Run("Rejected move is an error reply", func(t *testing.T) {
		srv, _ := newTestServer(t)
		conn, _ := dial(t, srv)

		send(t, conn, actionTurn, `{"row":5,"col":0}`)

		msg := read(t, conn)
		require.Equal(t, actionError, msg.Action)

		var reply errorPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &reply))
		assert.Equal(t, actionTurn, reply.Action)
		assert.Contains(t, reply.Error, apperror.ErrOutOfBounds.Error())
	})

	t.Run("Missing coordinates", func(t *testing.T) {
		srv, _ := newTestServer(t)
		conn, _ := dial(t, srv)

		send(t, conn, actionTurn, `{"row":1}`)

		assert.Equal(t, actionError, read(t, conn).Action)
	})
}

func TestServer_Strategy(t *testing.T) {
	srv, _ := newTestServer(t)
	conn, _ := dial(t, srv)

	send(t, conn, actionStrategy, `{"kind":"minimax"}`)

	// the reset broadcast comes first, then the reply
	assert.Equal(t, usecase.EventReset, read(t, conn).Action)

	msg := read(t, conn)
	require.Equal(t, actionStrategy, msg.Action)

	var game tictactoe.Snapshot
	require.NoError(t, json.Unmarshal(msg.Payload, &game))
	assert.Equal(t, "Impossible (Minimax)", game.Strategy)
}

func TestServer_BadMessages(t *testing.T) {
	srv, _ := newTestServer(t)
	conn, _ := dial(t, srv)

	t.Run("Unknown action", func(t *testing.T) {
		send(t, conn, "game:undo", "")

		msg := read(t, conn)
		require.Equal(t, actionError, msg.Action)

		var reply errorPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &reply))
		assert.Equal(t, "game:undo", reply.Action)
	})

	t.Run("Not json", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{nope")))

		assert.Equal(t, actionError, read(t, conn).Action)
	})

	t.Run("Unknown strategy", func(t *testing.T) {
		send(t, conn, actionStrategy, `{"kind":"oracle"}`)

		assert.Equal(t, actionError, read(t, conn).Action)
	})

	t.Run("State is still served", func(t *testing.T) {
		send(t, conn, actionState, "")

		assert.Equal(t, actionState, read(t, conn).Action)
	})
}

func TestHub_Publish(t *testing.T) {
	srv, hub := newTestServer(t)
	conn, _ := dial(t, srv)

	hub.Publish(usecase.EventReset, map[string]int{"move_count": 0})

	msg := read(t, conn)
	assert.Equal(t, usecase.EventReset, msg.Action)
	assert.JSONEq(t, `{"move_count":0}`, string(msg.Payload))
}
