// Package loop drives a single interactive game of Snake.
//
// Loop owns the tick cadence: each tick it clears the terminal, prepares and
// draws the frame, polls one key without blocking, steps the engine and
// sleeps for the snake's speed. The terminal itself is behind the Terminal
// interface so the loop can be driven by tcell in play mode or by a fake in
// tests.
package loop
