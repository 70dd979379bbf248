package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dannyob/mcp-servers/internal/journal"
	"github.com/dannyob/mcp-servers/internal/mcpserver"
	"github.com/dannyob/mcp-servers/internal/shell"
)

const version = "0.2.0"

func main() {
	shellPath := flag.String("shell", shell.DefaultShell, "shell used by run_command")
	httpAddr := flag.String("http", "", "serve MCP over HTTP on this address instead of stdio")
	journalPath := flag.String("journal", "", "record tool invocations to this SQLite file")
	verbose := flag.Int("verbose", 1, "log verbosity")
	flag.Parse()

	// Set up logging
	commonlog.Configure(*verbose, nil)

	logsDir := filepath.Join(os.TempDir(), "mcp-servers")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		log.Fatalf("Failed to create logs directory: %v", err)
	}

	logFile, err := os.OpenFile(
		filepath.Join(logsDir, "mcp-shell.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	multiWriter := io.MultiWriter(os.Stderr, logFile)
	log.SetOutput(multiWriter)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Println("Starting mcp-shell server...")

	opts := mcpserver.Options{
		Name:    "mcp-shell",
		Version: version,
		Runner:  shell.NewRunner(*shellPath),
	}

	if *journalPath != "" {
		db, err := journal.Open(*journalPath)
		if err != nil {
			log.Printf("Journal disabled: %v", err)
		} else {
			defer db.Close()
			opts.Journal = db
		}
	}

	server := mcpserver.New(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *httpAddr != "" {
		err = server.RunHTTP(ctx, *httpAddr)
	} else {
		err = server.RunStdio(ctx)
	}
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
