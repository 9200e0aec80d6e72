package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/app"
	"sandfall/internal/render"
	"sandfall/internal/sims/sand"
	"sandfall/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Size = 60
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	world, err := sand.NewWithConfig(sand.Config{Width: cfg.Size, Height: cfg.Size, Seed: cfg.Seed})
	if err != nil {
		log.Fatalf("create world: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	palette := render.NewPalette(world.Size(), render.DefaultColors(), cfg.Seed)
	err = term.New(screen, world, palette, cfg.Tick).Run(ctx)
	screen.Fini()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
