package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/scan-overlay-mcp/internal/config"
	"github.com/ironsheep/scan-overlay-mcp/internal/logging"
	"github.com/ironsheep/scan-overlay-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("scan-overlay-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("scan-overlay-mcp - MCP server for annotating medical scans")
			fmt.Println()
			fmt.Println("Usage: scan-overlay-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  SCAN_OVERLAY_LOG_LEVEL=debug             Enable debug logging")
			fmt.Println("  SCAN_OVERLAY_DISPLAY_WIDTH=800           Surface width a scan is synced to")
			fmt.Println("  SCAN_OVERLAY_DISPLAY_HEIGHT=600          Surface height before a scan is loaded")
			fmt.Println("  SCAN_OVERLAY_LENS_SIZE=150               Magnifier diameter in pixels")
			fmt.Println("  SCAN_OVERLAY_LENS_ZOOM=2.5               Magnifier zoom factor")
			fmt.Println("  SCAN_OVERLAY_GRID=true                   Show the reference grid")
			fmt.Println("  SCAN_OVERLAY_GRID_SPACING=50             Grid spacing in pixels")
			fmt.Println("  SCAN_OVERLAY_HOVER_TRACKING=true         Show the hover crosshair")
			fmt.Println("  SCAN_OVERLAY_MIN_COMMIT_DISTANCE=5       Shortest drag that becomes an annotation")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan-overlay-mcp: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr; stdout is for MCP protocol
	logger := logging.NewLogger("scan-overlay", cfg.Debug())
	logger.Debug("Starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		logger.Error("Server error", "error", err)
		srv.Close()
		os.Exit(1)
	}
}
