package main

// JSON shapes of the civ5-pbem-server API. The client only ever holds
// immutable per-request snapshots of these; the server owns the state.

// GameSummary is one entry of the game listing.
type GameSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Host      string `json:"host"`
	GameState string `json:"gameState"`
}

// Player is one slot of a game as the server sees it.
type Player struct {
	ID               string `json:"id"`
	HumanUserAccount string `json:"humanUserAccount"`
	PlayerNumber     int    `json:"playerNumber"`
	Civilization     string `json:"civilization"`
	PlayerType       string `json:"playerType"`
}

// Game is the detailed view of a single game.
type Game struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Host               string   `json:"host"`
	Description        string   `json:"description"`
	MapSize            string   `json:"mapSize"`
	GameState          string   `json:"gameState"`
	Players            []Player `json:"players"`
	NumberOfCityStates int      `json:"numberOfCityStates"`
}

// Credentials describes the account behind an access token.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ErrorResponse is the server's error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type newGameResponse struct {
	ID string `json:"id"`
}

var mapSizes = []string{"DUEL", "TINY", "SMALL", "STANDARD", "LARGE", "HUGE"}

func isValidMapSize(size string) bool {
	for _, s := range mapSizes {
		if s == size {
			return true
		}
	}
	return false
}

var playerTypes = []string{"HUMAN", "AI", "CLOSED"}

func isValidPlayerType(t string) bool {
	for _, p := range playerTypes {
		if p == t {
			return true
		}
	}
	return false
}
