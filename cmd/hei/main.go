// Package main prints the hei greeting.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	heicmd "github.com/louisbranch/arithbind/internal/cmd/hei"
	"github.com/louisbranch/arithbind/internal/platform/config"
)

func main() {
	cfg, err := heicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[HEI] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := heicmd.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exitf("hei: %v", err)
	}
}
