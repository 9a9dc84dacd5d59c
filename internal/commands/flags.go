package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/gim/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Version is the running build's version, compared against releases.
	Version string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Store reads and writes the config file at ConfigPath
	Store *config.Store
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gim", "config.toml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/gim/gim.log
// On Linux: $XDG_STATE_HOME/gim/gim.log (defaults to ~/.local/state/gim/gim.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "gim", "gim.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "gim", "gim.log")
	}

	return filepath.Join(home, ".local", "state", "gim", "gim.log")
}
