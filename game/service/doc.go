// Package service provides the business logic layer for the Snake game.
//
// The service package implements:
//   - Multi-session game management
//   - Board preset loading and session sizing
//   - Move, tick, pause and speed commands
//   - Per-session high score tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads the named board presets.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP, the
// tick loop) and the game engine. Every engine call happens under a single
// service mutex, and only copies of the state leave the service.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session on the small preset
//	sessionInfo, err := gameService.CreateSession(ctx, "small", 0, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Turn and advance
//	result, err := gameService.Move(ctx, sessionInfo.ID, "up")
//
// Ticks:
//
// TickAll auto-advances every session once. The engine's cooldown decides
// whether a session actually moves, so calling it more often than the
// cooldown is harmless. Only sessions that moved or ended are returned.
package service
