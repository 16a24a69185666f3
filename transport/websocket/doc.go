// Package websocket streams live game state for terminal Snake sessions.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Broadcasting state and the rendered frame after every change
//   - Optional move actions sent by clients
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub tracks all
// WebSocket connections by session. Each client connection is served by a
// read pump and a write pump goroutine.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - Incoming: {"action": "move", "direction": "up"}
//   - Outgoing: {"session_id", "event", "game_state", "frame"} where event is
//     state_update, or game_over once the snake has crashed
//
// Session Integration:
//
// Clients pick their session with a query parameter (/ws?session=ab12).
// Updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	hub.SetMoveHandler(func(sessionID, direction string) { ... })
//	hub.BroadcastToSession(sessionID, state, frame)
package websocket
