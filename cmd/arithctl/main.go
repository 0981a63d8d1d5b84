// Package main runs the arithctl command line.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/arithbind/internal/cmd/arithctl"
	"github.com/louisbranch/arithbind/internal/platform/config"
)

func main() {
	log.SetPrefix("[ARITHCTL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := arithctl.Execute(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		config.Exitf("arithctl: %v", err)
	}
}
