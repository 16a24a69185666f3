package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/terminal-snake/game/engine"
)

func createValidConfig() *engine.GameConfig {
	config := engine.DefaultGameConfig()
	config.Name = "Test Config"
	config.Description = "Test configuration"
	config.Width = 12
	config.Height = 10
	return config
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("classic is the default", func(t *testing.T) {
		dir := t.TempDir()
		classic := createValidConfig()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)
		writeConfigFile(t, dir, "another", createValidConfig())

		manager, err := NewManager(dir, nil)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Classic" {
			t.Errorf("Expected classic default, got %q", got)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path", nil)
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("first config when classic is missing", func(t *testing.T) {
		dir := t.TempDir()
		first := createValidConfig()
		first.Name = "Alpha"
		writeConfigFile(t, dir, "alpha", first)
		writeConfigFile(t, dir, "beta", createValidConfig())

		manager, err := NewManager(dir, nil)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Alpha" {
			t.Errorf("Expected first config as default, got %q", got)
		}
	})

	t.Run("empty directory uses built-in board", func(t *testing.T) {
		manager, err := NewManager(t.TempDir(), nil)
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got %v", err)
		}
		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Fatal("Expected default config to be available")
		}
		if defaultConfig.Width != 50 || defaultConfig.Height != 20 {
			t.Errorf("Expected built-in 50x20 board, got %dx%d", defaultConfig.Width, defaultConfig.Height)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	small := createValidConfig()
	small.Name = "Small"
	small.Width = 8
	small.Height = 8
	small.SnakeHead = engine.Position{Row: 3, Col: 3}
	small.SnakeBody = []engine.Position{{Row: 3, Col: 2}}
	small.FoodPosition = engine.Position{Row: 5, Col: 5}
	writeConfigFile(t, dir, "small", small)

	manager, err := NewManager(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("small")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Small" || config.Width != 8 {
			t.Errorf("Unexpected config %q %dx%d", config.Name, config.Width, config.Height)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("small.json")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Small" {
			t.Errorf("Expected Small, got %q", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		first, _ := manager.LoadConfig("small")
		second, _ := manager.LoadConfig("small")
		if first != second {
			t.Error("Expected cached config to be returned")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		invalid := createValidConfig()
		invalid.FoodPosition = invalid.SnakeHead
		writeConfigFile(t, dir, "invalid", invalid)

		_, err := manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644)

		_, err := manager.LoadConfig("broken")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_LoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	yamlConfig := `name: Tiny
description: YAML board
width: 8
height: 6
snake_head: {row: 2, col: 3}
snake_body:
  - {row: 2, col: 2}
speed_ms: 120
food_position: {row: 4, col: 5}
wall_crash_ends_game: true
glyphs: {wall: "#", empty: " ", head: "@", body: "o", food: "*"}
messages:
  game_over: "Game Over! Score: %d"
`
	if err := os.WriteFile(filepath.Join(dir, "tiny.yml"), []byte(yamlConfig), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	manager, err := NewManager(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("tiny")
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}
	if config.Name != "Tiny" || config.SpeedMs != 120 {
		t.Errorf("Unexpected YAML config %+v", config)
	}
	if manager.GetDefault().Name != "Tiny" {
		t.Errorf("Expected the only config to be the default, got %q", manager.GetDefault().Name)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	wrap := createValidConfig()
	wrap.Name = "Wrap"
	wrap.WallCrashEndsGame = false
	writeConfigFile(t, dir, "wrap", wrap)

	invalid := createValidConfig()
	invalid.Width = 1
	writeConfigFile(t, dir, "bad", invalid)

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644)
	os.Mkdir(filepath.Join(dir, "nested.json"), 0755)

	manager, err := NewManager(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "classic" || configs[1].ConfigID != "wrap" {
		t.Errorf("Expected sorted IDs classic, wrap; got %s, %s", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[1].WallCrashEndsGame {
		t.Error("Expected wrap config to report wall_crash_ends_game false")
	}
	if configs[0].Width != 12 || configs[0].Height != 10 || configs[0].Filename != "classic.json" {
		t.Errorf("Unexpected info %+v", configs[0])
	}
}

func TestManager_ReloadConfig(t *testing.T) {
	dir := t.TempDir()
	config := createValidConfig()
	writeConfigFile(t, dir, "classic", config)

	manager, err := NewManager(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config.SpeedMs = 90
	writeConfigFile(t, dir, "classic", config)

	cached, _ := manager.LoadConfig("classic")
	if cached.SpeedMs == 90 {
		t.Fatal("Expected the cached copy before reload")
	}

	reloaded, err := manager.ReloadConfig("classic")
	if err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}
	if reloaded.SpeedMs != 90 {
		t.Errorf("Expected reloaded speed 90, got %d", reloaded.SpeedMs)
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeConfigFile(t, dir, "other", createValidConfig())

	manager, err := NewManager(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	manager.LoadConfig("other")
	if manager.Count() != 2 {
		t.Fatalf("Expected 2 cached configs, got %d", manager.Count())
	}

	manager.RefreshCache()

	if manager.Count() != 1 {
		t.Errorf("Expected only the default cached after refresh, got %d", manager.Count())
	}
	if manager.GetDefault() == nil {
		t.Error("Expected default config after refresh")
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		if err := manager.SaveConfig("saved", createValidConfig()); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
			t.Errorf("Expected saved.json on disk: %v", err)
		}
		if _, err := manager.ReloadConfig("saved"); err != nil {
			t.Errorf("Expected saved config to load back: %v", err)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		if err := manager.SaveConfig("saved.yaml", createValidConfig()); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		loaded, err := engine.LoadGameConfig(filepath.Join(dir, "saved.yaml"))
		if err != nil {
			t.Fatalf("Expected YAML config to load back: %v", err)
		}
		if loaded.Width != 12 {
			t.Errorf("Expected width 12, got %d", loaded.Width)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		invalid := createValidConfig()
		invalid.Name = ""
		if err := manager.SaveConfig("nameless", invalid); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("path in name", func(t *testing.T) {
		if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeConfigFile(t, dir, "other", createValidConfig())

	manager, err := NewManager(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "classic"
			if i%2 == 0 {
				name = "other"
			}
			if _, err := manager.LoadConfig(name); err != nil {
				t.Errorf("LoadConfig(%s) failed: %v", name, err)
			}
			manager.GetDefault()
			manager.ListConfigs()
		}(i)
	}
	wg.Wait()
}
