package messages

import (
	"encoding/json"
	"fmt"

	"github.com/tmorrisey/pairs/pkg/game/types"
)

// Message types
const (
	MessageTypeClientReveal  = "reveal"
	MessageTypeClientResize  = "resize"
	MessageTypeClientReset   = "reset"
	MessageTypeClientNewGame = "newgame"
	MessageTypeServerState   = "state"
	MessageTypeServerWin     = "win"
)

// Message is the generic envelope for everything crossing the wire.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ClientReveal taps the tile at (row, col).
type ClientReveal struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ClientResize grows or shrinks the board by Delta rows/columns.
type ClientResize struct {
	Delta int `json:"delta"`
}

// Tile is the client-facing representation of one board cell. PairID is only
// present while the tile is face up.
type Tile struct {
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	Revealed bool `json:"revealed"`
	PairID   *int `json:"pairId,omitempty"`
}

// ServerState is the full board view pushed to the client after every
// state change.
type ServerState struct {
	BoardSize     int    `json:"boardSize"`
	Tiles         []Tile `json:"tiles"`
	RevealedCount int    `json:"revealedCount"`
	Won           bool   `json:"won"`
}

// ServerWin announces a cleared board.
type ServerWin struct {
	BoardSize      int     `json:"boardSize"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

// EventFromMessage maps a client message onto the game event it requests.
func EventFromMessage(msg *Message) (types.Event, error) {
	switch msg.Type {
	case MessageTypeClientReveal:
		var reveal ClientReveal
		if err := json.Unmarshal(msg.Payload, &reveal); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reveal payload: %w", err)
		}
		return types.RevealEvent{Position: types.Position{Row: reveal.Row, Col: reveal.Col}}, nil
	case MessageTypeClientResize:
		var resize ClientResize
		if err := json.Unmarshal(msg.Payload, &resize); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resize payload: %w", err)
		}
		return types.ResizeEvent{Delta: resize.Delta}, nil
	case MessageTypeClientReset:
		return types.ResetEvent{}, nil
	case MessageTypeClientNewGame:
		return types.NewGameEvent{}, nil
	default:
		return nil, fmt.Errorf("unknown client message type: %s", msg.Type)
	}
}

// NewServerMessage wraps a server payload in a Message envelope.
func NewServerMessage(msgType string, payload interface{}) (*Message, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}
	return &Message{
		Type:    msgType,
		Payload: b,
	}, nil
}
