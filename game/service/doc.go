// Package service provides the business logic layer for terminal Snake's
// server mode.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration listing, loading and saving
//   - Tick processing for single and bulk moves
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the game engine. Each session owns its own engine, so every remote player
// runs an independent board. A move request is one tick: the snake steps,
// collisions are checked, and the next frame is prepared before the result
// is returned together with the rendered frame.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	configMgr, _ := config.NewManager("configs", logger)
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		return err
//	}
//
//	result, err := gameService.BulkMove(ctx, info.ID, []string{"down", "right"}, false)
//
// Bulk moves stop at the first unknown direction or when the game ends and
// report a machine-readable StopReasonCode alongside the per-step trace.
package service
