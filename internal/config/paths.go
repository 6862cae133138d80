// Package config provides configuration management for folio.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the path configuration for folio.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/folio)
	ConfigDir string

	// DataDir is the directory for data files such as the settings
	// database (~/.local/share/folio)
	DataDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory
// spec. On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "folio"),
			DataDir:   filepath.Join(localAppData, "folio"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "folio"),
		DataDir:   filepath.Join(dataHome, "folio"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// StateDBFile returns the path to the settings database.
func (p *Paths) StateDBFile() string {
	return filepath.Join(p.DataDir, "state.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
