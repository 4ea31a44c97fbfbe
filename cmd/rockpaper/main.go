package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ayusman/rockpaper/internal/app"
	"github.com/ayusman/rockpaper/internal/config"
)

// HighGUI windows must be driven from the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	fmt.Println("Rock Paper Scissors - show your hand to the camera")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := app.New(cfg)
	defer game.Close()

	if err := game.Run(ctx); err != nil {
		game.Close()
		log.Fatalf("Game failed: %v", err)
	}
}
