// Package mcp exposes the snake game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API served by package api, and the JSON response is
// formatted as text an agent can read, including the rendered frame.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: state, frame and the moves that are safe on the next tick
//   - move, bulk_move: advance the game one or more ticks
//   - reset_game: new run on the same board
//   - move_history: paginated history across runs
//   - list_configs: available boards
//   - game_instructions: rules and frame legend
//   - describe_cell: what occupies a (row, col)
//
// Transport Modes:
//
// GetMCPServer returns the underlying server so the caller picks the
// transport: server.ServeStdio for local agents, or a streamable HTTP
// handler mounted at /mcp next to the REST API.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080", logger)
//	if err := client.WaitForAPI(ctx, 20); err != nil {
//		return err
//	}
//	return server.ServeStdio(client.GetMCPServer())
package mcp
