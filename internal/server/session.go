package server

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gravitas-games/gridboard/grid"
	"github.com/gravitas-games/gridboard/internal/config"
	"github.com/gravitas-games/gridboard/internal/network"
	"github.com/gravitas-games/gridboard/internal/snapshot"
	"github.com/gravitas-games/gridboard/path"
	"github.com/gravitas-games/gridboard/pkg/models"
	"github.com/gravitas-games/gridboard/square"
)

// Session owns one board and the clients connected to it. The grid core
// is single-writer, so every board access goes through the session
// mutex; that is the external serialization the grid requires.
type Session struct {
	ID        string
	CreatedAt time.Time

	// Client management
	clients     map[string]*models.Client // clientID -> Client
	connections map[string]*Connection    // clientID -> Connection
	mu          sync.RWMutex

	// Board state
	board   *grid.Grid
	boardMu sync.RWMutex

	snapshots *snapshot.Store
	config    *config.Config
}

// NewSession creates a session, restoring the board from the snapshot
// store when a snapshot exists and generating a fresh one otherwise.
func NewSession(ctx context.Context, id string, cfg *config.Config, snaps *snapshot.Store) (*Session, error) {
	log.Printf("Creating session: %s", id)

	board := grid.New(cfg.Board.CellSize)

	data, err := snaps.Load(ctx, cfg.Board.SnapshotName)
	switch {
	case err == nil:
		if err := board.FromData(data); err != nil {
			return nil, err
		}
		log.Printf("Board restored from snapshot %q: %d cells", cfg.Board.SnapshotName, board.Count())
	case errors.Is(err, snapshot.ErrNotFound):
		gen := grid.GenConfig{Size: cfg.Board.Size}
		if cfg.Board.NoiseAmplitude > 0 {
			gen.Height = grid.NoiseHeights(cfg.Board.Seed, cfg.Board.NoiseScale,
				cfg.Board.NoiseAmplitude, cfg.Board.NoiseOctaves)
		}
		board.Generate(gen)
		log.Printf("No snapshot %q, generated %dx%d board (%d cells)",
			cfg.Board.SnapshotName, cfg.Board.Size, cfg.Board.Size, board.Count())
	default:
		return nil, err
	}

	session := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		clients:     make(map[string]*models.Client),
		connections: make(map[string]*Connection),
		board:       board,
		snapshots:   snaps,
		config:      cfg,
	}

	return session, nil
}

// AddClient adds a client to the session
func (s *Session) AddClient(client *models.Client, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clients) >= s.config.Session.MaxClients {
		return errors.New("session is full")
	}

	s.clients[client.ID] = client
	s.connections[client.ID] = conn

	log.Printf("Client %s (%s) joined session %s", client.Username, client.ID, s.ID)
	return nil
}

// RemoveClient removes a client from the session
func (s *Session) RemoveClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, exists := s.clients[clientID]; exists {
		log.Printf("Client %s (%s) left session %s", client.Username, clientID, s.ID)
		delete(s.clients, clientID)
		delete(s.connections, clientID)
	}
}

// ClientCount returns the number of connected clients
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// BoardData returns a snapshot of the current board state
func (s *Session) BoardData() *grid.Data {
	s.boardMu.RLock()
	defer s.boardMu.RUnlock()
	return s.board.ToData()
}

// PlaceCell inserts a cell on the board. Reports whether the cell was
// stored; placement on an occupied coordinate is ignored.
func (s *Session) PlaceCell(c *grid.Cell) bool {
	s.boardMu.Lock()
	defer s.boardMu.Unlock()
	return s.board.Add(c)
}

// RemoveCell deletes the cell at (q, r) if present
func (s *Session) RemoveCell(q, r int) {
	s.boardMu.Lock()
	defer s.boardMu.Unlock()
	s.board.Remove(grid.NewCell(q, r))
}

// FindPath runs A* between two board cells
func (s *Session) FindPath(p network.FindPathPayload) network.PathResultPayload {
	s.boardMu.RLock()
	defer s.boardMu.RUnlock()

	route := path.FindOnGrid(s.board,
		square.Coord{Q: p.FromQ, R: p.FromR},
		square.Coord{Q: p.ToQ, R: p.ToR},
		p.Diagonals)
	return network.PathResultPayload{Route: route}
}

// SaveBoard persists the current board to the snapshot store
func (s *Session) SaveBoard(ctx context.Context) error {
	data := s.BoardData()
	if err := s.snapshots.Save(ctx, s.config.Board.SnapshotName, data); err != nil {
		return err
	}
	log.Printf("Board snapshot %q saved (%d cells)", s.config.Board.SnapshotName, len(data.Cells))
	return nil
}

// BroadcastMessage sends a message to all connected clients
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all clients except the specified
// connection
func (s *Session) BroadcastExcept(exclude *Connection, msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		if conn != exclude {
			conn.SendMessage(msg)
		}
	}
}
