package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/loop"
	"github.com/wricardo/snake-game/game/service"
	"github.com/wricardo/snake-game/game/session"
	"github.com/wricardo/snake-game/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	expectedAppName := "Snake Game Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	originalConfigDir := *configDir
	*configDir = "configs"
	defer func() { *configDir = originalConfigDir }()

	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	gameService, sessionManager, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil || sessionManager == nil {
		t.Fatal("Expected services to be initialized")
	}

	configs, err := gameService.ListConfigs(context.Background())
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 4 {
		t.Errorf("Expected the 4 shipped presets, got %d", len(configs))
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	originalConfigDir := *configDir
	*configDir = "/non/existent/path"
	defer func() { *configDir = originalConfigDir }()

	if _, _, err := initializeServices(); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_Preset(t *testing.T) {
	originalConfigDir, originalPreset := *configDir, *preset
	defer func() { *configDir, *preset = originalConfigDir, originalPreset }()
	*configDir = "configs"

	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	*preset = "small"
	gameService, _, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, err := gameService.CreateSession(context.Background(), "", 0, 0)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if info.GameState.Width != 15 {
		t.Errorf("Expected the small preset by default, got width %d", info.GameState.Width)
	}

	*preset = "missing"
	if _, _, err := initializeServices(); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *host == "" {
		t.Error("Host should have a default value")
	}
	if *configDir == "" {
		t.Error("Config directory should have a default value")
	}
	if *tick != loop.DefaultInterval {
		t.Errorf("Expected default tick %v, got %v", loop.DefaultInterval, *tick)
	}
}

func TestSessionCleanupRoutine_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessionCleanupRoutine(ctx, session.NewManager(), time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cleanup routine did not stop after cancel")
	}
}

// newTestServer runs the full stack against the shipped presets
func newTestServer(t *testing.T, interval time.Duration) (*httptest.Server, service.GameService) {
	t.Helper()
	originalConfigDir := *configDir
	*configDir = "configs"
	t.Cleanup(func() { *configDir = originalConfigDir })

	gameService, _, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	apiServer := startGame(ctx, gameService, interval)
	ts := httptest.NewServer(newRouter(apiServer, mcp.NewClient("http://unused")))
	t.Cleanup(ts.Close)
	return ts, gameService
}

func TestStartGame_LoopAdvancesSessions(t *testing.T) {
	ts, gameService := newTestServer(t, 10*time.Millisecond)

	resp, err := http.Post(ts.URL+"/api/sessions", "application/json", strings.NewReader(`{"config_id":"small"}`))
	if err != nil {
		t.Fatalf("Create session failed: %v", err)
	}
	var info service.SessionInfo
	json.NewDecoder(resp.Body).Decode(&info)
	resp.Body.Close()

	if info.GameState == nil || info.GameState.Width != 15 {
		t.Fatalf("Expected a 15x15 session, got %+v", info.GameState)
	}

	// The loop moves the snake without any client input
	deadline := time.Now().Add(3 * time.Second)
	for {
		state, err := gameService.GetGameState(context.Background(), info.ID)
		if err != nil {
			t.Fatalf("GetGameState failed: %v", err)
		}
		if state.Moves > 0 {
			if state.Head() == (engine.Position{X: 7, Y: 7}) {
				t.Error("Expected the head to leave the start cell")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Game loop never advanced the session")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestNewRouter_MCPEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, time.Hour)

	resp, err := http.Get(ts.URL + "/mcp")
	if err != nil {
		t.Fatalf("GET /mcp failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET /mcp, got %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	if err != nil {
		t.Fatalf("POST /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	for _, tool := range []string{"create_session", "move", "set_speed", "game_instructions"} {
		if !strings.Contains(string(body), tool) {
			t.Errorf("Expected tool %s in tools/list response", tool)
		}
	}
}

func TestNewRouter_Health(t *testing.T) {
	ts, _ := newTestServer(t, time.Hour)

	if !externalServerAvailable(ts.URL) {
		t.Error("Expected the health check to succeed")
	}
	if externalServerAvailable("http://127.0.0.1:1") {
		t.Error("Expected the health check to fail for a closed port")
	}
}
