// Package websocket provides WebSocket transport for the Snake game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - State and board broadcasting after every change
//   - Key-press commands from the browser
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a read and a
// write goroutine; registration and delivery go through the hub's loop.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Incoming: {"action": "move", "direction": "up"}; actions are move,
//     pause, speed (with "seconds"), reset (optional "width"/"height") and tick
//   - Outgoing: {"session_id", "event": "state_update", "game_state", "board",
//     "status", "high_score"}, or {"event": "error", "data": {"error": ...}}
//     sent only to the client whose command failed
//
// Session Integration:
//
// Clients name their session with ?session=abc1 when connecting. State
// updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetCommandHandler(apiServer)
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Concurrency:
//
// Broadcasts never block the caller: when the hub falls behind, new messages
// are dropped, and a client whose own buffer is full is disconnected.
package websocket
