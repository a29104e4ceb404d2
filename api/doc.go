// Package api provides HTTP REST API handlers for the snake game server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id", "width", "height"}, all optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session with its high score
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Raw game state
//   - GET /api/sessions/{id}/board - Projected board, text rendering and status line
//   - POST /api/sessions/{id}/move - {"direction": "up|down|left|right"}; empty keeps heading
//   - POST /api/sessions/{id}/tick - Advance once in the current heading
//   - POST /api/sessions/{id}/pause - Toggle pause
//   - POST /api/sessions/{id}/speed - {"seconds": 0.3}, clamped to [0.1, 1.0]
//   - POST /api/sessions/{id}/reset - {"width", "height"}, both optional
//
// Configuration:
//   - GET /api/configs - List board presets
//   - POST /api/configs - Save a preset
//   - GET /api/configs/{name} - Get a preset
//
// Other:
//   - GET /api/health - Liveness check
//   - GET /ws?session={id} - WebSocket stream of state updates
//
// The Server also implements websocket.CommandHandler, so key presses sent
// over a WebSocket run through the same service calls as REST requests and
// every change is pushed to all watchers of the session.
//
// Errors are returned as JSON with an HTTP status derived from the service
// error: 400 for bad input (body, direction, board size, speed, preset),
// 404 for unknown sessions or presets, 500 otherwise.
//
//	{"error": "invalid direction: \"north\""}
package api
