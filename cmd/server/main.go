package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hrerp/internal/app/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("hrerp server: %v", err)
	}
}
