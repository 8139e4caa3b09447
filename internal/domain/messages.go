package domain

// Message type tags. Each wire message is a single tagged envelope; dispatch
// sites switch on the tag instead of downcasting per-type structs.
const (
	// client -> server
	MsgLogin             = "login"
	MsgMove              = "move"
	MsgChat              = "chat"
	MsgPlayAgain         = "play_again"
	MsgCancelMatchmaking = "cancel_matchmaking"
	MsgReturnToLobby     = "return_to_lobby"
	MsgDisconnect        = "disconnect"

	// server -> client
	MsgLoginResponse     = "login_response"
	MsgGameStart         = "game_start"
	MsgGameState         = "game_state"
	MsgPlayAgainResponse = "play_again_response"
	MsgError             = "error"
)

// BoardSnapshot is the full board state as it crosses the wire: row-major
// 6x7 grid, current turn and status. It must round-trip cell-for-cell.
type BoardSnapshot struct {
	Grid        [][]PlayerID `json:"board"`
	CurrentTurn PlayerID     `json:"currentTurn"`
	Status      GameStatus   `json:"status"`
	RedName     string       `json:"redName"`
	YellowName  string       `json:"yellowName"`
}

// ClientMessage is every message a client can send.
type ClientMessage struct {
	Type         string `json:"type"`
	Username     string `json:"username,omitempty"`
	Column       int    `json:"column"`
	Text         string `json:"text,omitempty"`
	WantsRematch bool   `json:"wantsRematch"`
	Reason       string `json:"reason,omitempty"`
}

// ServerMessage is every message the server can send.
type ServerMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`

	// login_response
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`

	// game_start
	YourColor string `json:"yourColor,omitempty"`
	Opponent  string `json:"opponent,omitempty"`

	// game_start, game_state
	State *BoardSnapshot `json:"state,omitempty"`

	// chat
	Sender string `json:"sender,omitempty"`
	Text   string `json:"text,omitempty"`

	// play_again_response
	BothAccepted         bool `json:"bothAccepted"`
	OpponentDisconnected bool `json:"opponentDisconnected"`

	// disconnect
	Reason string `json:"reason,omitempty"`
}
