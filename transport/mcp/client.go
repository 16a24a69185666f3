package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/jpillora/backoff"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/wricardo/terminal-snake/game/engine"
	"github.com/wricardo/terminal-snake/game/service"
)

// ErrAPIUnavailable is returned by WaitForAPI when the REST API never answers
var ErrAPIUnavailable = errors.New("api unavailable")

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
	logger     log15.Logger
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string, logger log15.Logger) *Client {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.New("component", "mcp"),
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Terminal Snake",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(`Terminal Snake - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Steer the snake (head @ in frames rendered with ASCII glyphs) to eat food and grow.
Each move advances the game by one tick. Running into your own body ends the game.
Depending on the board, hitting the wall either ends the game or wraps to the other side.

AVAILABLE TOOLS:
- game_state: Get current game state and rendered frame
- move: Single tick in a direction (up/down/left/right) - requires intent explanation
- bulk_move: Multiple ticks at once - requires intent explanation
- reset_game: Start a new run on the same board
- move_history: View past moves
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available boards
- game_instructions: Get the full rules
- describe_cell: Get what occupies a specific grid cell

NOTE: The 'intent' parameter on move/bulk_move is for explaining your reasoning before acting.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	directions := []string{"up", "down", "left", "right"}

	// Session management
	c.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new game session with optional board selection"),
		mcp.WithString("config_id", mcp.Description("Board config to use (see list_configs). Defaults to the server default")),
	), c.handleCreateSession)

	c.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active game sessions"),
	), c.handleListSessions)

	c.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get details of a specific session"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID to retrieve")),
	), c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the current game state with the rendered frame"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), c.handleGameState)

	c.mcpServer.AddTool(mcp.NewTool("move",
		mcp.WithDescription("Advance the game one tick in a direction"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("direction", mcp.Required(), mcp.Enum(directions...), mcp.Description("Direction to move")),
		mcp.WithString("intent", mcp.Required(), mcp.Description("What you expect this move to achieve")),
		mcp.WithBoolean("reset", mcp.Description("Reset the game before moving")),
	), c.handleMove)

	c.mcpServer.AddTool(mcp.NewTool("bulk_move",
		mcp.WithDescription(fmt.Sprintf("Advance the game several ticks (max %d). Stops early when the game ends", engine.MaxBulkMoves)),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithArray("moves", mcp.Required(), mcp.WithStringEnumItems(directions), mcp.Description("Directions, one per tick")),
		mcp.WithString("intent", mcp.Required(), mcp.Description("What you expect this sequence to achieve")),
		mcp.WithBoolean("reset", mcp.Description("Reset the game before moving")),
	), c.handleBulkMove)

	c.mcpServer.AddTool(mcp.NewTool("reset_game",
		mcp.WithDescription("Start a new run on the same board"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), c.handleReset)

	c.mcpServer.AddTool(mcp.NewTool("move_history",
		mcp.WithDescription("Get paginated move history"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Moves per page (default 20)")),
		mcp.WithString("order", mcp.Enum("asc", "desc"), mcp.Description("Sort order (default desc)")),
	), c.handleMoveHistory)

	// Configuration
	c.mcpServer.AddTool(mcp.NewTool("list_configs",
		mcp.WithDescription("List available board configurations"),
	), c.handleListConfigs)

	c.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the rules of the game and how to read frames"),
	), c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.NewTool("describe_cell",
		mcp.WithDescription("Describe what occupies a grid cell. Row 0 is the top wall, col 0 the left wall"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row index")),
		mcp.WithNumber("col", mcp.Required(), mcp.Description("Column index")),
	), c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// WaitForAPI polls the health endpoint until it answers or ctx is done
func (c *Client) WaitForAPI(ctx context.Context, maxAttempts int) error {
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 0; maxAttempts <= 0 || attempt < maxAttempts; attempt++ {
		if lastErr = c.apiCall(ctx, http.MethodGet, "/api/health", nil, nil); lastErr == nil {
			return nil
		}
		wait := b.Duration()
		c.logger.Debug("api not ready", "attempt", attempt+1, "wait", wait, "err", lastErr)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrAPIUnavailable, ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrAPIUnavailable, maxAttempts, lastErr)
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
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
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	configID := cast.ToString(args["config_id"])
	if configID == "" {
		configID = cast.ToString(args["config_name"])
	}

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return toolError(err)
	}

	c.logger.Info("session created", "session", session.ID, "config", session.ConfigName)
	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState, session.Frame))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return toolError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score, status := 0, "alive"
		if s.GameState != nil {
			score = s.GameState.Score
			if s.GameState.GameOver {
				status = "game over"
			}
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Score: %d, %s, Created: %s)\n",
			s.ID, s.ConfigName, score, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError(err)
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &session); err != nil {
		return toolError(err)
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError(err)
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &session); err != nil {
		return toolError(err)
	}

	var b strings.Builder
	b.WriteString(formatGameState(session.GameState, session.Frame))
	if moves := safeMoves(session.GameState, session.GameConfig); len(moves) > 0 && !session.GameState.GameOver {
		fmt.Fprintf(&b, "\nSafe moves: %s", strings.Join(moves, ","))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])
	direction := cast.ToString(args["direction"])
	reset := cast.ToBool(args["reset"])
	c.logger.Debug("move", "session", sessionID, "dir", direction, "intent", cast.ToString(args["intent"]))

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/move"), body, &result); err != nil {
		return toolError(err)
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])
	moves := cast.ToStringSlice(args["moves"])
	reset := cast.ToBool(args["reset"])
	c.logger.Debug("bulk move", "session", sessionID, "moves", len(moves), "intent", cast.ToString(args["intent"]))

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return toolError(err)
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError(err)
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
		Frame   string            `json:"frame"`
	}

	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return toolError(err)
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State, response.Frame))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	query := url.Values{}
	if page := cast.ToInt(args["page"]); page > 0 {
		query.Set("page", cast.ToString(page))
	}
	if limit := cast.ToInt(args["limit"]); limit > 0 {
		query.Set("limit", cast.ToString(limit))
	}
	if order := cast.ToString(args["order"]); order != "" {
		query.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return toolError(err)
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/configs", nil, &configs); err != nil {
		return toolError(err)
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		walls := "wrap"
		if cfg.WallCrashEndsGame {
			walls = "deadly"
		}
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, Tick: %dms, Walls: %s\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Width, cfg.Height, cfg.SpeedMs, walls)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := fmt.Sprintf(`Terminal Snake - Complete Instructions

OBJECTIVE:
Eat as much food as possible. Every food eaten adds 1 to the score and 1 segment to the snake.

THE BOARD:
• The grid is surrounded by a one-cell wall ring; row 0 is the top, col 0 the left.
• Positions are (row, col). Rows grow downward, columns grow rightward.
• Frames use the board's glyphs. The default board draws walls as ■ and food as ♥.

EACH TICK:
1. The snake moves one cell in the chosen direction (up, down, left, right, or w/a/s/d).
2. If the new head lands on food the snake grows and the food respawns on a free cell.
3. Otherwise the tail moves along with the head, so the tail cell frees up on the same tick.

GAME OVER:
• The head runs into the body. Reversing straight back into your neck counts.
• The head hits the wall, on boards where wall_crash_ends_game is true.
  Other boards wrap the snake to the opposite edge.

TOOLS:
• move runs one tick, bulk_move up to %d ticks and stops as soon as the game ends.
• game_state shows the frame plus the moves that will not kill you on the next tick.
• describe_cell tells you what occupies any (row, col).
• reset_game starts a new run; the move history keeps counting across runs.`, engine.MaxBulkMoves)

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])
	pos := engine.Position{Row: cast.ToInt(args["row"]), Col: cast.ToInt(args["col"])}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return toolError(err)
	}

	text, err := describeCell(&state, pos)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(text), nil
}

// describeCell reports what occupies pos and whether the head can safely enter it
func describeCell(state *engine.GameState, pos engine.Position) (string, error) {
	if state.Grid == nil || state.Snake == nil {
		return "", fmt.Errorf("session has no grid")
	}
	if !state.Grid.InBounds(pos) {
		return "", fmt.Errorf("coordinates (%d, %d) are out of bounds. Grid is %d rows x %d cols (0-%d, 0-%d)",
			pos.Row, pos.Col, state.Grid.Height, state.Grid.Width, state.Grid.Height-1, state.Grid.Width-1)
	}

	cell := state.Grid.At(pos)
	var description string
	switch cell {
	case engine.CellWall:
		description = "Wall. Entering it ends the game or wraps, depending on the board"
	case engine.CellHead:
		description = "The snake's head"
	case engine.CellBody:
		description = "Snake body. Entering it ends the game"
		if n := len(state.Snake.Body); n > 0 && state.Snake.Body[n-1] == pos {
			description = "Snake tail. It moves away next tick unless the snake eats"
		}
	case engine.CellFood:
		description = "Food. Eating it adds 1 to the score and grows the snake"
	default:
		description = "Empty"
	}

	return fmt.Sprintf("Cell at (%d, %d):\nType: %s\nDistance from head: %d\nDescription: %s",
		pos.Row, pos.Col, cell, engine.ManhattanDistance(state.Snake.Head, pos), description), nil
}

// safeMoves lists the directions that do not end the game on the next tick
func safeMoves(state *engine.GameState, cfg *engine.GameConfig) []string {
	if state == nil || state.Grid == nil || state.Snake == nil {
		return nil
	}
	wallKills := cfg == nil || cfg.WallCrashEndsGame

	var tail engine.Position
	if n := len(state.Snake.Body); n > 0 {
		tail = state.Snake.Body[n-1]
	}

	var moves []string
	for _, d := range engine.Directions {
		next := state.Snake.NextHead(d)
		if !state.Grid.IsInterior(next) {
			if wallKills {
				continue
			}
			next = engine.WrapInterior(next, state.Grid)
		}
		eats := state.Food != nil && !state.Food.Consumed && state.Food.Position == next
		if state.Snake.Occupies(next) && (next != tail || eats) {
			continue
		}
		moves = append(moves, string(d))
	}
	return moves
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nRun: %d | Best score: %d\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.Runs, session.BestScore,
		formatGameState(session.GameState, session.Frame))
}

func formatGameState(state *engine.GameState, frame string) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	length := 0
	head := engine.Position{}
	if state.Snake != nil {
		length = state.Snake.Length()
		head = state.Snake.Head
	}
	fmt.Fprintf(&b, "Head: (%d,%d) | Direction: %s | Length: %d | Score: %d | Moves: %d\n",
		head.Row, head.Col, state.Direction, length, state.Score, state.TotalMoves)
	if state.Food != nil {
		fmt.Fprintf(&b, "Food: (%d,%d)\n", state.Food.Position.Row, state.Food.Position.Col)
	}

	if frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
		if !strings.HasSuffix(frame, "\n") {
			b.WriteString("\n")
		}
	}

	if state.GameOver {
		b.WriteString("\nGAME OVER")
		if state.Reason != "" {
			fmt.Fprintf(&b, " (hit %s)", state.Reason)
		}
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatStep(s *service.StepInfo) string {
	status := "alive"
	if !s.Alive {
		status = "dead"
	}
	ate := ""
	if s.Ate {
		ate = " ate"
	}
	return fmt.Sprintf("%s (%d,%d)→(%d,%d) len=%d%s %s",
		s.Dir, s.From.Row, s.From.Col, s.To.Row, s.To.Col, s.Length, ate, status)
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move applied\n")
	} else {
		b.WriteString("✗ Move not applied\n")
	}

	if result.Step != nil {
		fmt.Fprintf(&b, "Step: %s\n", formatStep(result.Step))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState, result.Frame))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	configName := ""
	if result.GameState != nil {
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s\n", sessionID, configName)

	fmt.Fprintf(&b, "Executed %d/%d moves", result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, " (truncated to %d)", result.Limit)
	}
	b.WriteString("\n")
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped: %s [%s] on move %d\n", result.StoppedReason, result.StopReasonCode, result.StoppedOnMove)
	}
	fmt.Fprintf(&b, "Head: (%d,%d)→(%d,%d) • Length: %d→%d • Score +%d\n",
		result.StartHead.Row, result.StartHead.Col, result.EndHead.Row, result.EndHead.Col,
		result.StartLength, result.EndLength, result.ScoreDelta)

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for i := range result.Steps {
			fmt.Fprintf(&b, "%d. %s\n", result.Steps[i].Idx, formatStep(&result.Steps[i]))
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState, result.Frame))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Alive {
			status = "✗"
		}
		ate := ""
		if move.Ate {
			ate = " ate"
		}
		fmt.Fprintf(&b, "#%d: %s (%d,%d)→(%d,%d) len=%d%s %s\n",
			move.MoveNumber, move.Direction,
			move.FromPosition.Row, move.FromPosition.Col,
			move.ToPosition.Row, move.ToPosition.Col,
			move.Length, ate, status)
	}

	if history.HasNext {
		b.WriteString("\n(more moves on next page)")
	}
	return b.String()
}
