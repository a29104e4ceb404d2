package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snake Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Steer the snake (🐍) to the food (🍎). Each food is worth 10 points and grows the snake by one segment. Hitting a wall or your own body ends the game.

AVAILABLE TOOLS:
- create_session: Create a new game session (optional preset and board size)
- list_sessions: List all active sessions
- get_session: Get session details and high score
- game_state: Get the board, score and safe moves
- move: Turn and advance one cell - requires intent explanation
- tick: Advance one cell in the current heading
- toggle_pause: Pause or resume
- set_speed: Change the seconds between moves (0.1 to 1.0)
- reset_game: Start a new game, optionally on a new board size
- list_configs: List board presets
- game_instructions: Get the full rules

NOTE: The server also advances every running game on its own clock. Moves inside the cooldown window are rejected as too_early.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional preset and board size",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use: small, classic, medium or large (optional)",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Board width override (optional)",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Board height override (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score, heading and safe moves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Turn the snake and advance one cell. Reversing onto the body is ignored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to head",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance one cell in the current heading if the cooldown has elapsed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_pause",
		Description: "Pause a running game or resume a paused one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleTogglePause)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_speed",
		Description: "Set the minimum seconds between moves, clamped to 0.1..1.0",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"seconds": map[string]interface{}{
					"type":        "number",
					"description": "Seconds between moves",
				},
			},
			Required: []string{"session_id", "seconds"},
		},
	}, c.handleSetSpeed)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Start a new game in the session, keeping its high score",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "New board width (optional, keeps the current size)",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "New board height (optional, keeps the current size)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// sessionPath builds /api/sessions/{id}{suffix} with the ID escaped
func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// intArg reads a JSON number argument; MCP delivers numbers as float64
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if w := intArg(args, "width"); w > 0 {
		body["width"] = w
	}
	if h := intArg(args, "height"); h > 0 {
		body["height"] = h
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState, session.HighScore))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score := 0
		state := "unknown"
		if s.GameState != nil {
			score = s.GameState.Score
			state = s.GameState.Message
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Score: %d, High score: %d, Created: %s) %s\n",
			s.ID, s.ConfigName, score, s.HighScore, s.CreatedAt.Format("15:04:05"), state)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// The session carries the high score alongside the state
	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(session.GameState, session.HighScore)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, _ := args["direction"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, map[string]string{"direction": direction}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.postCommand(ctx, request, "/tick", nil)
}

func (c *Client) handleTogglePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.postCommand(ctx, request, "/pause", nil)
}

func (c *Client) handleSetSpeed(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seconds, ok := arguments(request)["seconds"].(float64)
	if !ok {
		return mcp.NewToolResultError("seconds is required"), nil
	}
	return c.postCommand(ctx, request, "/speed", map[string]float64{"seconds": seconds})
}

// postCommand sends a session command that answers with a MoveResult
func (c *Client) postCommand(ctx context.Context, request mcp.CallToolRequest, suffix string, body interface{}) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), suffix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]int{}
	if w := intArg(args, "width"); w > 0 {
		body["width"] = w
	}
	if h := intArg(args, "height"); h > 0 {
		body["height"] = h
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State, -1))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s\n  %s\n  Board: %dx%d, Speed: %.1fs per move\n\n",
			config.ConfigID, config.Description, config.Width, config.Height, config.CooldownSeconds)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🐍 Snake Game - Complete Instructions

GAME OBJECTIVE:
Eat as much food as possible. Every food adds 10 points and one body segment.

BOARD LEGEND:
• 🐍 - Snake head
• 🟢 - Snake body
• 🍎 - Food
• ⬜ - Empty cell
Coordinates are (x,y) with (0,0) in the top-left corner; y grows downward.

GAME MECHANICS:
• The snake starts with 3 segments in the middle of the board, heading right
• A move turns the snake (if requested) and advances the head one cell
• Asking to reverse straight back onto the body is ignored: the snake keeps its heading
• Moves are rate-limited by the movement cooldown (default 0.3s); early moves return too_early
• The server advances every running game automatically once the cooldown elapses
• Food only appears on cells whose x and y are both even
• A paused or finished game ignores moves

GAME OVER CONDITIONS:
• The head leaves the board (wall-collision)
• The head runs into the body (self-collision)
• No free cell is left for new food (board-full)

🤖 AI AGENTS - STRATEGY:
• Read the "Safe moves" line in game_state before each move
• Plan turns early: the snake keeps moving on its own between your calls
• Use toggle_pause to stop the clock while you think
• Use set_speed with a larger value (up to 1.0) for more time between moves
• Prefer paths that leave the snake room to turn around as it grows

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- reset_game starts over and keeps the session's high score
- Presets: small (15x15), classic (20x20), medium (25x25), large (30x30)

Good luck! 🍎`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState, session.HighScore))
}

// formatGameState renders the board with a summary. A negative highScore
// omits the high score line.
func formatGameState(state *engine.GameState, highScore int) string {
	if state == nil || len(state.Snake) == 0 {
		return "No game state available"
	}

	var result strings.Builder
	head := state.Head()

	fmt.Fprintf(&result, "Board: %dx%d | Score: %d | Length: %d", state.Width, state.Height, state.Score, len(state.Snake))
	if highScore >= 0 {
		fmt.Fprintf(&result, " | High score: %d", highScore)
	}
	result.WriteString("\n")
	fmt.Fprintf(&result, "Head: %s heading %s | Food: %s (distance %d) | Speed: %.2fs per move\n",
		head, state.Direction, state.Food, engine.ManhattanDistance(head, state.Food), state.CooldownSeconds())

	if !state.GameOver {
		safe := engine.SafeDirections(state)
		names := make([]string, len(safe))
		for i, d := range safe {
			names[i] = string(d)
		}
		if len(names) == 0 {
			names = append(names, "none")
		}
		fmt.Fprintf(&result, "Safe moves: %s\n", strings.Join(names, ", "))
	}
	result.WriteString("\n")

	result.WriteString(engine.BuildBoard(state).String())

	if state.GameOver {
		fmt.Fprintf(&result, "\n💀 GAME OVER (%s)\n", state.DeathCause)
		fmt.Fprintf(&result, "Final score: %d | Snake length: %d", state.Score, len(state.Snake))
		if highScore >= 0 {
			fmt.Fprintf(&result, " | High score: %d", highScore)
		}
		result.WriteString("\n")
	} else if state.Paused {
		result.WriteString("\n⏸ PAUSED\n")
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nStatus: %s", state.Message)
	}

	return result.String()
}

func describeOutcome(outcome engine.Outcome) string {
	switch outcome {
	case engine.OutcomeMoved:
		return "✓ Moved"
	case engine.OutcomeAte:
		return fmt.Sprintf("🍎 Ate food (+%d)", engine.FoodScore)
	case engine.OutcomeTooEarly:
		return "⏳ Too early: the movement cooldown has not elapsed"
	case engine.OutcomeBlocked:
		return "✗ Ignored: the game is paused or over"
	case engine.OutcomeHitWall:
		return "💀 Hit the wall"
	case engine.OutcomeHitSelf:
		return "💀 Ran into the snake's own body"
	case engine.OutcomeBoardFull:
		return "🏁 Board full: no room left for food"
	default:
		return ""
	}
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder

	if line := describeOutcome(result.Outcome); line != "" {
		b.WriteString(line + "\n")
	} else if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState, result.HighScore))
	return b.String()
}
