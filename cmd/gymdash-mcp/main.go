package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gymmcp "github.com/claude/gymdash/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "GymDash server URL (e.g. https://gymdash.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymdash-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: gymdash-mcp -server <URL>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	client := gymmcp.NewHTTPClient(strings.TrimRight(*serverURL, "/"))
	s := gymmcp.New(client, Version, log)

	log.Info("serving MCP over stdio", "server", *serverURL)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
