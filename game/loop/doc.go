// Package loop drives the Snake game clock.
//
// A Runner calls TickAll on the game service at a fixed interval. Each session
// moves only when its own movement cooldown has elapsed, so the interval only
// bounds how late a move can land. Sessions that moved or ended are pushed to
// a Publisher, normally the WebSocket hub.
//
// Usage:
//
//	runner := loop.NewRunner(gameService, hub, loop.DefaultInterval)
//	go runner.Run(ctx)
package loop
