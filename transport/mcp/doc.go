// Package mcp provides a Model Context Protocol server for the snake game.
//
// The Client is a thin proxy: every tool calls the REST API of a running
// game server and renders the answer as text, with the board drawn using
// the same markers as the web and terminal views.
//
// MCP Tools:
//   - create_session: Create a session from a preset, optionally resized
//   - list_sessions: List all active sessions with scores
//   - get_session: Get a session with its board and high score
//   - game_state: Board, heading, food distance and safe moves
//   - move: Turn and advance one cell
//   - tick: Advance one cell in the current heading
//   - toggle_pause: Pause or resume
//   - set_speed: Change the movement cooldown
//   - reset_game: Start a new game in the session
//   - list_configs: List board presets
//   - game_instructions: Full rules and strategy hints
//
// Transport Modes:
//
// The server binary exposes the MCP server either over stdio (stdio-mcp
// mode, with an internal HTTP server started on a free port) or as a
// streamable HTTP endpoint at /mcp.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
