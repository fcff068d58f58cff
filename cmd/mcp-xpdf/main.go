package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/a3tai/mcp-xpdf/internal/config"
	"github.com/a3tai/mcp-xpdf/internal/log"
	"github.com/a3tai/mcp-xpdf/internal/mcp"
	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	if versionRequested(os.Args[1:]) {
		printVersion(os.Stdout)
		return
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Default.Errorf("Server error: %v", err)
		os.Exit(1)
	}
}

// run serves until the transport ends or a signal arrives, then removes
// temporary output.
func run(cfg *config.Config) error {
	defer xpdf.RunExitCleanup()

	log.SetLevel(cfg.LogLevel)
	if version != "dev" {
		cfg.Version = version
	}
	log.Default.Debugf("Starting with configuration: %s", cfg)

	tools, err := mcp.NewTools(cfg, log.Default)
	if err != nil {
		return err
	}
	server, err := mcp.NewServer(cfg, tools, log.Default)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		return err
	}
	log.Default.Debugf("Server stopped successfully")
	return nil
}

func versionRequested(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "MCP Xpdf\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
