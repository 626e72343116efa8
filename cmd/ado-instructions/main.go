// ADO Instructions: an MCP server that converts meeting notes, feature
// text, and workflow images into hierarchical Azure DevOps work items
// (Epics containing Tasks).
//
// Usage:
//
//	ado-instructions serve                     # stdio transport (default)
//	ado-instructions serve --transport http    # streamable HTTP transport
//	ado-instructions update                    # update to the latest version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/config"
	adoserver "github.com/omarsolutions/ado-instructions/internal/server"
	"github.com/omarsolutions/ado-instructions/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("ado-instructions v%s\n", adoserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	transport := fs.String("transport", cfg.Server.Transport, "transport: stdio or http")
	host := fs.String("host", cfg.Server.Host, "listen host for the http transport")
	port := fs.Int("port", cfg.Server.Port, "listen port for the http transport")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := adoserver.NewLogger(cfg.Logging.Level)
	defer func() { _ = log.Sync() }()

	s, err := adoserver.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	switch *transport {
	case config.TransportHTTP:
		addr := fmt.Sprintf("%s:%d", *host, *port)
		httpServer := server.NewStreamableHTTPServer(s)

		// Graceful shutdown on interrupt for the long-running listener.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			log.Info("shutting down")
			_ = httpServer.Shutdown(context.Background())
		}()

		log.Info("serving mcp over http", zap.String("addr", addr))
		return httpServer.Start(addr)
	case config.TransportStdio:
		log.Info("serving mcp over stdio")
		return server.ServeStdio(s)
	default:
		return fmt.Errorf("unknown transport %q", *transport)
	}
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available.
func checkForUpdates() {
	result := updater.CheckVersion(adoserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s -> v%s\n"+
				"  Run: ado-instructions update\n"+
				"  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "Checking for updates...\n")

	result := updater.CheckVersion(adoserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "New version available: v%s -> v%s\nDownloading...\n",
		result.CurrentVersion, result.LatestVersion)

	if err := updater.SelfUpdate(adoserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nYou can download manually from:\n  %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s!\nRestart ado-instructions to use the new version.\n",
		result.LatestVersion)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ADO Instructions v%s — Azure DevOps work item MCP server

Usage:
  ado-instructions serve [--transport stdio|http] [--host HOST] [--port PORT]
  ado-instructions update
  ado-instructions version

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "ado-instructions": {
        "command": "ado-instructions",
        "args": ["serve"]
      }
    }
  }

Learn more: https://github.com/omarsolutions/ado-instructions
`, adoserver.Version)
}
