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

	"github.com/dannyob/mcp-servers/internal/buffers"
	"github.com/dannyob/mcp-servers/internal/emacs"
	"github.com/dannyob/mcp-servers/internal/journal"
	"github.com/dannyob/mcp-servers/internal/mcpserver"
	"github.com/dannyob/mcp-servers/internal/shell"
)

const version = "0.2.0"

func main() {
	emacsclient := flag.String("emacsclient", "emacsclient", "emacsclient binary to invoke")
	socket := flag.String("socket", "", "emacs server socket name")
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
		filepath.Join(logsDir, "mcp-emacs.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	// Stdout carries the protocol when serving stdio, so logs go to stderr
	// and the log file only.
	multiWriter := io.MultiWriter(os.Stderr, logFile)
	log.SetOutput(multiWriter)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Println("Starting mcp-emacs server...")

	client := emacs.NewClient(*emacsclient)
	client.Socket = *socket

	opts := mcpserver.Options{
		Name:    "mcp-emacs",
		Version: version,
		Buffers: buffers.NewService(client),
		Emacs:   client,
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
