// Package api provides the HTTP REST API for playing terminal Snake remotely.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=accessed|created|score&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Compact multi-session view
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - GET /api/sessions/{id}/frame - Rendered board as text/plain
//   - POST /api/sessions/{id}/move - One tick ({"direction": "up", "reset": false})
//   - POST /api/sessions/{id}/bulk-move - Several ticks ({"moves": ["up", "left"]})
//   - POST /api/sessions/{id}/reset - Start a fresh run
//   - GET /api/sessions/{id}/history - Paginated move history (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get a configuration
//   - POST /api/configs - Save a configuration
//
// Other:
//   - GET /api/health - Liveness and session count
//   - GET /ws?session={id} - WebSocket updates for a session
//
// Error Handling:
//
// Errors are returned as JSON: {"error": "message"}. Unknown sessions and
// configurations map to 404, invalid directions and configurations to 400.
//
// Move and bulk move responses carry the rendered frame and a compact
// per-step trace (idx, dir, from, to, ate, length, alive). Bulk moves also
// report stop_reason_code (invalid_direction|hit_self|hit_wall|game_over)
// and stopped_on_move.
package api
