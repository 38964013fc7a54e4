package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/long-screenshot-mcp/internal/config"
	"github.com/ironsheep/long-screenshot-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv(config.EnvConfig)

	// Handle --version, --help and --config flags
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("long-screenshot-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s\n", args[i])
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Long Screenshot MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("backend=%s offload=%v step=%v output_dir=%q", cfg.Backend, cfg.Offload, cfg.Step, cfg.OutputDir)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Server error: %v", err)
		srv.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("long-screenshot-mcp - MCP server that stitches scrolling captures into one tall image")
	fmt.Println()
	fmt.Println("Usage: long-screenshot-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c PATH  YAML configuration file")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  LONGSHOT_MCP_CONFIG=PATH        Configuration file (overridden by --config)")
	fmt.Println("  LONGSHOT_MCP_BACKEND=bild|gocv  Shape extraction backend")
	fmt.Println("  LONGSHOT_MCP_OUTPUT_DIR=DIR     Directory for stitched images")
	fmt.Println("  LONGSHOT_MCP_OFFLOAD=true       Align frames on a worker goroutine")
	fmt.Println("  LONGSHOT_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Register it as a stdio server in your MCP client.")
}
