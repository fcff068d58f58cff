package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/mcp-xpdf/internal/log"
	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort     = 8080
	DefaultHost     = "127.0.0.1"
	DefaultLogLevel = "info"

	// EnvPrefix prefixes every environment variable, e.g. XPDF_PDFTEXT_TIMEOUT.
	EnvPrefix = "XPDF"
)

// Tool holds the settings of one Xpdf executable.
type Tool struct {
	// Path of an installed executable. Empty uses the bundled one.
	Path string
	// TimeoutSeconds of one invocation. Zero selects the tool default.
	TimeoutSeconds int
}

// Timeout returns TimeoutSeconds as a duration.
func (t Tool) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// Config holds all configuration for the xpdf MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// PDFDirectory confines every path a client names.
	PDFDirectory string

	// Xpdf configuration
	TempRoot  string
	PDFText   Tool
	PDFInfo   Tool
	PDFImages Tool

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	ConfigFile string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:         ModeStdio, // Default to stdio mode for MCP compatibility
		Host:         DefaultHost,
		Port:         DefaultPort,
		PDFDirectory: currentDir,
		TempRoot:     xpdf.DefaultTempRoot(),
		Version:      "1.0.0",
		ServerName:   "mcp-xpdf",
		LogLevel:     DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags, the environment and an optional
// config file, and returns a configuration. Flags win over the environment,
// which wins over the file.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	populateConfigFromViper(cfg)

	if cfg.PDFDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.PDFDirectory); err == nil {
			cfg.PDFDirectory = expandedPath
		}
	}
	if cfg.TempRoot != "" {
		if expandedPath, err := filepath.Abs(cfg.TempRoot); err == nil {
			cfg.TempRoot = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.PDFDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("temproot", cfg.TempRoot)
	viper.SetDefault("config", "")
	for _, tool := range []string{"pdftext", "pdfinfo", "pdfimages"} {
		viper.SetDefault(tool+".path", "")
		viper.SetDefault(tool+".timeout", 0)
	}
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP (SSE) server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.PDFDirectory, "Directory that every PDF, text and image path must be inside")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("temproot", cfg.TempRoot, "Directory holding provisioned executables and temporary output")
	pflag.String("config", "", "Optional YAML config file")

	pflag.String("pdftext-path", "", "Path of an installed pdftotext executable")
	pflag.Int("pdftext-timeout", 0, "pdftotext timeout in seconds (0 = 30)")
	pflag.String("pdfinfo-path", "", "Path of an installed pdfinfo executable")
	pflag.Int("pdfinfo-timeout", 0, "pdfinfo timeout in seconds (0 = 5)")
	pflag.String("pdfimages-path", "", "Path of an installed pdfimages executable")
	pflag.Int("pdfimages-timeout", 0, "pdfimages timeout in seconds (0 = 30)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("temproot", pflag.Lookup("temproot"))
	_ = viper.BindPFlag("config", pflag.Lookup("config"))
	for _, tool := range []string{"pdftext", "pdfinfo", "pdfimages"} {
		_ = viper.BindPFlag(tool+".path", pflag.Lookup(tool+"-path"))
		_ = viper.BindPFlag(tool+".timeout", pflag.Lookup(tool+"-timeout"))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Xpdf - A Model Context Protocol server for the Xpdf command line tools\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                   # stdio mode, bundled executables\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --pdftext-path=/usr/bin/pdftotext # use an installed pdftotext\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs              # confine paths to a directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --port=8081         # SSE server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  XPDF_MODE               Server mode\n")
		fmt.Fprintf(os.Stderr, "  XPDF_DIR                PDF directory\n")
		fmt.Fprintf(os.Stderr, "  XPDF_LOGLEVEL           Log level\n")
		fmt.Fprintf(os.Stderr, "  XPDF_TEMPROOT           Temporary root directory\n")
		fmt.Fprintf(os.Stderr, "  XPDF_PDFTEXT_PATH       pdftotext executable\n")
		fmt.Fprintf(os.Stderr, "  XPDF_PDFTEXT_TIMEOUT    pdftotext timeout in seconds\n")
		fmt.Fprintf(os.Stderr, "  XPDF_PDFINFO_PATH       pdfinfo executable\n")
		fmt.Fprintf(os.Stderr, "  XPDF_PDFINFO_TIMEOUT    pdfinfo timeout in seconds\n")
		fmt.Fprintf(os.Stderr, "  XPDF_PDFIMAGES_PATH     pdfimages executable\n")
		fmt.Fprintf(os.Stderr, "  XPDF_PDFIMAGES_TIMEOUT  pdfimages timeout in seconds\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.PDFDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.TempRoot = viper.GetString("temproot")
	cfg.ConfigFile = viper.GetString("config")
	cfg.PDFText = toolFromViper("pdftext")
	cfg.PDFInfo = toolFromViper("pdfinfo")
	cfg.PDFImages = toolFromViper("pdfimages")
}

func toolFromViper(name string) Tool {
	return Tool{
		Path:           viper.GetString(name + ".path"),
		TimeoutSeconds: viper.GetInt(name + ".timeout"),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.PDFDirectory == "" {
		return errors.New("PDF directory cannot be empty")
	}
	if info, err := os.Stat(c.PDFDirectory); err != nil {
		return fmt.Errorf("cannot access PDF directory %s: %w", c.PDFDirectory, err)
	} else if !info.IsDir() {
		return fmt.Errorf("PDF directory %s is not a directory", c.PDFDirectory)
	}

	if c.TempRoot == "" {
		return errors.New("temp root cannot be empty")
	}

	tools := []struct {
		name string
		tool Tool
	}{
		{"pdftext", c.PDFText},
		{"pdfinfo", c.PDFInfo},
		{"pdfimages", c.PDFImages},
	}
	for _, t := range tools {
		if t.tool.TimeoutSeconds < 0 {
			return fmt.Errorf("%s timeout cannot be negative", t.name)
		}
	}

	validLogLevels := map[string]bool{
		log.LevelDebug: true,
		log.LevelInfo:  true,
		log.LevelWarn:  true,
		log.LevelError: true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// ToolConfig builds the xpdf configuration of one tool.
func (c *Config) ToolConfig(t Tool, logger log.Logger) xpdf.ToolConfig {
	return xpdf.ToolConfig{
		ExecutablePath: t.Path,
		Timeout:        t.Timeout(),
		TempRoot:       c.TempRoot,
		Logger:         logger,
	}
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == log.LevelDebug
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, PDFDirectory: %s, TempRoot: %s, LogLevel: %s, "+
		"PDFText: %+v, PDFInfo: %+v, PDFImages: %+v}",
		c.Mode, c.Host, c.Port, c.PDFDirectory, c.TempRoot, c.LogLevel, c.PDFText, c.PDFInfo, c.PDFImages)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
