// Package main provides an agent that reports whether an NFC reader is
// attached to this machine. It prints the result once, serves it over
// HTTP/WebSocket, or shows it in the system tray.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/systray"
	"github.com/spf13/pflag"

	"github.com/dotside-studios/nfc-status-agent/buildinfo"
	"github.com/dotside-studios/nfc-status-agent/nfc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, nil)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.Version {
		fmt.Fprintln(stdout, buildinfo.BuildInfo())
		return 0
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	logger.SetOutput(stderr)

	agent, err := NewAgent(cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to create agent")
		return 1
	}

	switch {
	case cfg.Check:
		if err := writeStatus(stdout, agent.Check()); err != nil {
			logger.WithError(err).Error("Failed to write status")
			return 1
		}
		return 0

	case cfg.CLI:
		if err := agent.Start(); err != nil {
			logger.WithError(err).Error("Failed to start agent")
			return 1
		}
		defer agent.Stop()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("Shutdown signal received, stopping server...")
		return 0

	default:
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			systray.Quit()
		}()

		NewSystrayApp(agent).Run()
		return 0
	}
}

// writeStatus prints a status as a single JSON line.
func writeStatus(w io.Writer, status nfc.Status) error {
	return json.NewEncoder(w).Encode(status)
}
