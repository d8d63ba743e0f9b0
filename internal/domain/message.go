package domain

// ClientMessage is anything a websocket client sends.
type ClientMessage struct {
	Type    string `json:"type"`
	GameID  string `json:"gameId,omitempty"`
	Token   string `json:"token,omitempty"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Size    int    `json:"size,omitempty"`
	Depth   int    `json:"depth,omitempty"`
	Pruning *bool  `json:"pruning,omitempty"`
}

type ServerMessage struct {
	Type    string     `json:"type"`
	Message string     `json:"message,omitempty"`
	GameID  string     `json:"gameId,omitempty"`
	Move    *Move      `json:"move,omitempty"`
	Player  string     `json:"player,omitempty"`
	Winner  string     `json:"winner,omitempty"`
	State   *GameState `json:"state,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
