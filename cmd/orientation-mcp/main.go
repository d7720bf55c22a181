package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sitewise/orientation-mcp/internal/server"
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
			fmt.Printf("orientation-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("orientation-mcp - MCP server for drawing orientation analysis")
			fmt.Println()
			fmt.Println("Usage: orientation-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  ORIENT_MCP_LOG_LEVEL=debug            Enable debug logging")
			fmt.Println("  ORIENT_MCP_EDGE_THRESHOLD_LOW=50      Low hysteresis threshold")
			fmt.Println("  ORIENT_MCP_EDGE_THRESHOLD_HIGH=150    High hysteresis threshold")
			fmt.Println("  ORIENT_MCP_AGREEMENT_WINDOW_DEG=20    North method agreement window")
			fmt.Println("  ORIENT_MCP_MIN_WALL_LENGTH_FRAC=0.12  Wall length floor, page-relative")
			fmt.Println("  ORIENT_MCP_CLUSTER_SPREAD_MAX_DEG=5   Rotation high-confidence spread")
			fmt.Println()
			fmt.Println("A .env file in the working directory is loaded if present.")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Optional .env file; missing is fine
	_ = godotenv.Load()

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("ORIENT_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Orientation MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
