package main

import (
	"context"
	"flag"
	"io"

	"github.com/dodlang/dod/pkg/lsp"
	"github.com/dodlang/dod/pkg/lsp/log"
)

func runLSP(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lsp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logPath := fs.String("log", "", "Path to log file for debugging")
	configPath := fs.String("config", "", "Path to a YAML config file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := lsp.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = lsp.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}

	// Set up logging if requested
	var logger *log.Logger
	if *logPath != "" {
		var err error
		logger, err = log.Open(*logPath)
		if err != nil {
			return err
		}
		defer logger.Close()
	}

	server := lsp.NewServer(stdin, stdout, logger, cfg)
	return server.Run(context.Background())
}
