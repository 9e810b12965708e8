/*
Package server implements msgpack IPC for the board solver.

Clients write msgpack-encoded requests to stdin and read one msgpack response
per request from stdout. Requests are processed in order, one at a time, and
every response carries the request id plus timing information in microseconds.

# IPC

A solve request sends the 25 board letters row by row and the optional
modifier tiles as [col, row] pairs:

	{"id": "req_001", "b": "catszzzzzzzzzzzzzzzzzzzzz", "dl": [0, 0], "l": 5}

The server answers with score groups ranked from the highest total down:

	{"id": "req_001", "g": [{"p": 15, "w": ["cats"], "r": 1}, {"p": 13, "w": ["cat"], "r": 2}], "c": 3, "t": 212}

Setting "s" also explores every single-letter swap. Swap groups list each
swap as a cell and the letter placed there:

	{"id": "req_002", "b": "...", "s": true}
	{"id": "req_002", "g": [...], "sw": [{"p": 40, "r": 1, "o": [{"x": 3, "y": 0, "lt": "s", "w": ["cats"]}]}], ...}

The other actions are selected with "action":

	{"id": "i1", "action": "info"}
	{"id": "c1", "action": "complete", "p": "ca", "l": 10}
	{"id": "h1", "action": "health"}
	{"id": "r1", "action": "reload"}

Errors come back as {"id", "e", "c"} with an HTTP-like code:
400 for a malformed request, 404 for an unknown action, 408 when swap
exploration hits the configured timeout and 500 for internal failures.
*/
package server

// Error codes sent in ErrorResponse.Code.
const (
	CodeBadRequest    = 400
	CodeUnknownAction = 404
	CodeSwapTimeout   = 408
	CodeInternal      = 500
)

// Actions accepted in Request.Action. An empty action means ActionSolve.
const (
	ActionSolve    = "solve"
	ActionInfo     = "info"
	ActionComplete = "complete"
	ActionHealth   = "health"
	ActionReload   = "reload"
)

// Request is the single request shape for every action. Fields unused by an action are ignored.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Board  string `msgpack:"b,omitempty"`
	DL     []int  `msgpack:"dl,omitempty"`
	DW     []int  `msgpack:"dw,omitempty"`
	TL     []int  `msgpack:"tl,omitempty"`
	Swaps  bool   `msgpack:"s,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
}

// WordGroup is one point total and the words that reach it.
type WordGroup struct {
	Points int      `msgpack:"p"`
	Words  []string `msgpack:"w"`
	Rank   uint16   `msgpack:"r"`
}

// SwapOption is one swap: the letter Letter placed at (Col, Row).
type SwapOption struct {
	Col    int      `msgpack:"x"`
	Row    int      `msgpack:"y"`
	Letter string   `msgpack:"lt"`
	Words  []string `msgpack:"w"`
}

// SwapGroup is one point total reached after a swap, with every swap that reaches it.
type SwapGroup struct {
	Points  int          `msgpack:"p"`
	Rank    uint16       `msgpack:"r"`
	Options []SwapOption `msgpack:"o"`
}

// SolveResponse answers a solve request. Count is the number of distinct
// (points, word) entries found on the board, before the limit is applied.
type SolveResponse struct {
	ID        string      `msgpack:"id"`
	Groups    []WordGroup `msgpack:"g"`
	Swaps     []SwapGroup `msgpack:"sw,omitempty"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
	SwapTime  int64       `msgpack:"st,omitempty"`
}

// CompleteResponse lists dictionary words under a prefix.
type CompleteResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// InfoResponse describes the loaded dictionary and solver settings.
type InfoResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Path     string `msgpack:"path"`
	Backend  string `msgpack:"backend"`
	Words    int    `msgpack:"words"`
	Skipped  int    `msgpack:"skipped"`
	LoadedAt int64  `msgpack:"loaded_at"`
	Workers  int    `msgpack:"workers"`
	MaxLimit int    `msgpack:"max_limit"`
}

// StatusResponse answers health and reload requests and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for any failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
