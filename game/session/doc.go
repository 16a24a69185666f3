// Package session provides in-memory session management for terminal
// Snake's server mode.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Random 4-character hex session IDs
//   - Case-insensitive lookup
//   - Expiry sweeps for idle sessions
//
// Each session owns its own engine, created from the configuration it was
// started with. Sessions are not persisted; a restart begins with none.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		return err
//	}
//
//	go manager.RunCleanup(ctx, time.Minute, time.Hour)
package session
