package network

import (
	"encoding/json"

	"github.com/gravitas-games/gridboard/grid"
	"github.com/gravitas-games/gridboard/square"
)

// Message types - Client → Server
const (
	MsgTypeJoin       = "join"
	MsgTypeLeave      = "leave"
	MsgTypePlaceCell  = "place_cell"
	MsgTypeRemoveCell = "remove_cell"
	MsgTypeFindPath   = "find_path"
	MsgTypePing       = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome      = "welcome"
	MsgTypeClientJoined = "client_joined"
	MsgTypeClientLeft   = "client_left"
	MsgTypeCellPlaced   = "cell_placed"
	MsgTypeCellRemoved  = "cell_removed"
	MsgTypePathResult   = "path_result"
	MsgTypeError        = "error"
	MsgTypePong         = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// PlaceCellPayload asks the server to insert a cell on the board.
// Placement at an occupied coordinate is ignored, matching the grid's
// idempotent insert policy.
type PlaceCellPayload struct {
	Q        int            `json:"q"`
	R        int            `json:"r"`
	H        float64        `json:"h"`
	Walkable bool           `json:"walkable"`
	UserData map[string]any `json:"userData,omitempty"`
}

// RemoveCellPayload asks the server to delete a cell from the board
type RemoveCellPayload struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// FindPathPayload asks the server for a route between two cells
type FindPathPayload struct {
	FromQ     int  `json:"from_q"`
	FromR     int  `json:"from_r"`
	ToQ       int  `json:"to_q"`
	ToR       int  `json:"to_r"`
	Diagonals bool `json:"diagonals"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to a client after joining, carrying the full
// board snapshot
type WelcomePayload struct {
	ClientID  string     `json:"client_id"`
	Username  string     `json:"username"`
	SessionID string     `json:"session_id"`
	Board     *grid.Data `json:"board"`
}

// ClientJoinedPayload notifies clients when someone joins
type ClientJoinedPayload struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
}

// ClientLeftPayload notifies clients when someone leaves
type ClientLeftPayload struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
}

// CellPlacedPayload broadcasts a successful cell insertion
type CellPlacedPayload struct {
	Cell     grid.CellData `json:"cell"`
	ClientID string        `json:"client_id"`
}

// CellRemovedPayload broadcasts a cell removal
type CellRemovedPayload struct {
	Q        int    `json:"q"`
	R        int    `json:"r"`
	ClientID string `json:"client_id"`
}

// PathResultPayload answers a find_path request. Route is null when the
// goal is unreachable.
type PathResultPayload struct {
	Route []square.Coord `json:"route"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
