// Package terminal adapts a tcell screen to the loop.Terminal interface.
//
// tcell delivers input through a blocking PollEvent call, so Screen runs a
// single goroutine that pumps events into a buffered channel. PollKey drains
// that channel without blocking and reports the most recent key.
package terminal
