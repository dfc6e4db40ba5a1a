package config

import (
	"os"
	"path/filepath"

	"github.com/snipmd/snipmd/internal/language"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	SnippetsPath string              `mapstructure:"path"`
	Prefix       string              `mapstructure:"prefix"`
	CombinedExt  string              `mapstructure:"combined_ext"`
	Verbose      bool                `mapstructure:"verbose"`
	Languages    []language.Language `mapstructure:"languages"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("path", "snippets")
	viper.SetDefault("prefix", "snippets")
	viper.SetDefault("combined_ext", ".md")
	viper.SetDefault("verbose", false)

	viper.SetConfigName("snipmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "snipmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SNIPMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPath returns the snippets root with tilde expansion
func GetPath() string {
	path := viper.GetString("path")
	return expandTilde(path)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPrefix returns the include directive prefix
func GetPrefix() string {
	return viper.GetString("prefix")
}

// GetCombinedExt returns the extension for generated combined files
func GetCombinedExt() string {
	return viper.GetString("combined_ext")
}

// GetVerbose reports whether verbose output is enabled
func GetVerbose() bool {
	return viper.GetBool("verbose")
}

// Languages returns the language set built from the default table plus
// any entries from the config file.
func Languages() *language.Set {
	return language.NewSet(C.Languages...)
}

// SetPath sets the snippets root at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.SnippetsPath = path
}

// SetVerbose sets verbose output at runtime
func SetVerbose(v bool) {
	viper.Set("verbose", v)
	C.Verbose = v
}
