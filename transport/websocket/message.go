package websocket

import "encoding/json"

const (
	actionState    = "game:state"
	actionTurn     = "game:turn"
	actionReset    = "game:reset"
	actionStrategy = "game:strategy"
	actionError    = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type turnPayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type strategyPayload struct {
	Kind string `json:"kind"`
	Seed *int64 `json:"seed,omitempty"`
}

type errorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

func encode(action string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: raw})
}
