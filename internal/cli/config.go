package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/w31r4/ptree/internal/logger"
)

// Configuration keys double as flag names. The matching environment variable
// is PTREE_<KEY> with dashes turned into underscores.
const (
	envPrefix      = "PTREE"
	configFileName = "ptree"

	allKey         = "all"
	widthKey       = "width"
	colorKey       = "color"
	logLevelKey    = "log-level"
	fromKey        = "from"
	saveKey        = "save"
	interactiveKey = "interactive"
	configKey      = "config"

	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// Config is the resolved configuration of one run. Flags take precedence over
// PTREE_* environment variables, which take precedence over the config file.
type Config struct {
	Filter      string
	All         bool
	Width       int
	Color       string
	LogLevel    string
	From        string
	Save        string
	Interactive bool
}

func registerFlags(fs *flag.FlagSet) {
	fs.BoolP(allKey, "a", false, "show processes of all users")
	fs.IntP(widthKey, "w", 0, "output width in columns (0 detects the terminal width)")
	fs.String(colorKey, colorAuto, "color output: auto, always or never")
	fs.String(logLevelKey, logger.DefaultLevel, "diagnostic log level: debug, info, warn or error")
	fs.String(fromKey, "", "read the process snapshot from a JSON file instead of the system")
	fs.String(saveKey, "", "write the acquired process snapshot to a JSON file")
	fs.BoolP(interactiveKey, "i", false, "browse the tree interactively")
	fs.String(configKey, "", "config file (default $XDG_CONFIG_HOME/ptree/ptree.{yaml,toml,json})")
}

// loadConfig layers flags, environment and config file into a Config.
func loadConfig(cmd *cobra.Command, args []string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, wrapError(ExitGeneral, "bind flags", err)
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		All:         v.GetBool(allKey),
		Width:       v.GetInt(widthKey),
		Color:       strings.ToLower(strings.TrimSpace(v.GetString(colorKey))),
		LogLevel:    v.GetString(logLevelKey),
		From:        v.GetString(fromKey),
		Save:        v.GetString(saveKey),
		Interactive: v.GetBool(interactiveKey),
	}
	if len(args) == 1 {
		cfg.Filter = args[0]
	}

	return cfg, cfg.validate()
}

func readConfigFile(v *viper.Viper) error {
	if path := v.GetString(configKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return wrapError(ExitUsage, "read config file", err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	v.SetConfigName(configFileName)
	v.AddConfigPath(filepath.Join(dir, configFileName))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return wrapError(ExitUsage, "read config file", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return usageErrorf("invalid --color %q: want auto, always or never", c.Color)
	}
	if c.Width < 0 {
		return usageErrorf("invalid --width %d: must not be negative", c.Width)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return usageErrorf("invalid --log-level %q: want debug, info, warn or error", c.LogLevel)
	}
	if c.From != "" && c.Save != "" && c.From == c.Save {
		return usageErrorf("--from and --save name the same file")
	}
	return nil
}
