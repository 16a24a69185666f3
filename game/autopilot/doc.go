// Package autopilot plays snake sessions over the REST API without a human.
//
// Strategy runs a breadth-first search from the head to the food on every
// tick, treating the body as blocked except for the tail, which moves out of
// the way. When no path exists it picks the safe move with the largest
// reachable area. Runner drives a Client through several resets and
// reports the score of each attempt, which makes it a quick smoke test for a
// running server and a baseline for agents playing through MCP.
//
// Usage:
//
//	client := autopilot.NewClient("http://localhost:8080")
//	if _, err := client.CreateSession(ctx, "classic"); err != nil {
//		return err
//	}
//	report, err := autopilot.NewRunner(client, logger).Run(ctx, autopilot.Options{Attempts: 3})
package autopilot
