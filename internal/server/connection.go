package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitas-games/gridboard/grid"
	"github.com/gravitas-games/gridboard/internal/network"
	"github.com/gravitas-games/gridboard/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 65536
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	ws     *websocket.Conn
	server *Server

	// Client identity (set after authentication)
	client *models.Client

	// Buffered channel for outbound messages
	send chan []byte

	authenticated bool
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:            ws,
		server:        server,
		send:          make(chan []byte, 256),
		authenticated: false,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket
// connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeJoin:
		c.handleJoin()

	case network.MsgTypeLeave:
		c.handleLeave()

	case network.MsgTypePlaceCell:
		c.handlePlaceCell(msg.Payload)

	case network.MsgTypeRemoveCell:
		c.handleRemoveCell(msg.Payload)

	case network.MsgTypeFindPath:
		c.handleFindPath(msg.Payload)

	case network.MsgTypePing:
		c.handlePing()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// handleJoin adds the client to the session and sends the board
// snapshot
func (c *Connection) handleJoin() {
	if !c.authenticated || c.client == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return
	}

	c.client.Connected = true
	c.client.ConnectedAt = time.Now()
	c.client.SessionID = c.server.session.ID

	if err := c.server.session.AddClient(c.client, c); err != nil {
		log.Printf("Failed to add client to session: %v", err)
		c.SendError("join_failed", "Failed to join session")
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			ClientID:  c.client.ID,
			Username:  c.client.Username,
			SessionID: c.server.session.ID,
			Board:     c.server.session.BoardData(),
		},
	})

	c.server.session.BroadcastExcept(c, &network.ServerMessage{
		Type: network.MsgTypeClientJoined,
		Payload: network.ClientJoinedPayload{
			ClientID: c.client.ID,
			Username: c.client.Username,
		},
	})

	log.Printf("Client %s joined session %s", c.client.Username, c.server.session.ID)
}

// handleLeave removes the client from the session
func (c *Connection) handleLeave() {
	if c.client != nil {
		c.server.session.RemoveClient(c.client.ID)

		c.server.session.BroadcastMessage(&network.ServerMessage{
			Type: network.MsgTypeClientLeft,
			Payload: network.ClientLeftPayload{
				ClientID: c.client.ID,
				Username: c.client.Username,
			},
		})
	}
}

// handlePlaceCell inserts a cell on the board and broadcasts the result
func (c *Connection) handlePlaceCell(payload json.RawMessage) {
	if !c.authenticated || c.client == nil {
		c.SendError("not_authenticated", "Must be authenticated to place cells")
		return
	}

	var req network.PlaceCellPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("Failed to parse place_cell payload: %v", err)
		c.SendError("invalid_place_cell", "Invalid place_cell message")
		return
	}

	cell := grid.NewCell(req.Q, req.R)
	cell.H = req.H
	cell.Walkable = req.Walkable
	cell.UserData = req.UserData

	if !c.server.session.PlaceCell(cell) {
		// Occupied coordinate: insert is a no-op, nothing to broadcast
		return
	}

	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeCellPlaced,
		Payload: network.CellPlacedPayload{
			Cell: grid.CellData{
				Q: cell.Q, R: cell.R, S: cell.S,
				H: cell.H, Walkable: cell.Walkable, UserData: cell.UserData,
			},
			ClientID: c.client.ID,
		},
	})
}

// handleRemoveCell deletes a cell and broadcasts the removal
func (c *Connection) handleRemoveCell(payload json.RawMessage) {
	if !c.authenticated || c.client == nil {
		c.SendError("not_authenticated", "Must be authenticated to remove cells")
		return
	}

	var req network.RemoveCellPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("Failed to parse remove_cell payload: %v", err)
		c.SendError("invalid_remove_cell", "Invalid remove_cell message")
		return
	}

	c.server.session.RemoveCell(req.Q, req.R)

	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeCellRemoved,
		Payload: network.CellRemovedPayload{
			Q:        req.Q,
			R:        req.R,
			ClientID: c.client.ID,
		},
	})
}

// handleFindPath answers a pathfinding request
func (c *Connection) handleFindPath(payload json.RawMessage) {
	if !c.authenticated || c.client == nil {
		c.SendError("not_authenticated", "Must be authenticated to request paths")
		return
	}

	var req network.FindPathPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("Failed to parse find_path payload: %v", err)
		c.SendError("invalid_find_path", "Invalid find_path message")
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePathResult,
		Payload: c.server.session.FindPath(req),
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection
func (c *Connection) Close() {
	if c.authenticated && c.client != nil {
		c.handleLeave()
	}

	close(c.send)
	c.ws.Close()
}
