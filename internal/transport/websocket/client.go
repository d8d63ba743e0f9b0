package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/hex/backend/internal/domain"
)

// ConnectionManager holds one live connection per game
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use, so every write to a
	// game's socket goes through its mutex.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers conn for gameID, closing any previous one
func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching leaves a newer connection for the same game alone.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[gameID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

func (cm *ConnectionManager) IsCurrentConnection(gameID string, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[gameID]
	return exists && currentConn == conn
}

// SendMessage writes message to the game's socket. A game with no
// connection is not an error.
func (cm *ConnectionManager) SendMessage(gameID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(message)
}

// Ping sends a websocket ping through the game's write lock
func (cm *ConnectionManager) Ping(gameID string, conn *websocket.Conn) error {
	cm.mu.RLock()
	mu, exists := cm.writeMu[gameID]
	current := cm.connections[gameID]
	cm.mu.RUnlock()
	if !exists || current != conn {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
