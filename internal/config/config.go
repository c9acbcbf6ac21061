// Package config provides the editor's ambient configuration: a small
// set of startup knobs unrelated to document or editing semantics,
// modeled on the teacher's own internal/config.Config shape but scoped
// down to what this domain actually needs.
package config

// Config holds every ambient configuration option for the editor.
type Config struct {
	// Theme names the chroma style preset used by internal/highlight
	// ("monokai", "dracula", "github", ...).
	Theme string `mapstructure:"theme"`

	// Keybindings names the initial keybinding preset. Only "default"
	// exists, and nothing reads this field: NormalMode always uses its
	// built-in table.
	Keybindings string `mapstructure:"keybindings"`

	// Debug enables structured logging to LogPath.
	Debug bool `mapstructure:"debug"`

	// LogPath is where debug logging is written when Debug is set.
	LogPath string `mapstructure:"log_path"`
}

// Defaults returns the configuration used when no config file and no
// flag overrides it.
func Defaults() Config {
	return Config{
		Theme:       "monokai",
		Keybindings: "default",
		Debug:       false,
		LogPath:     "debug.log",
	}
}
