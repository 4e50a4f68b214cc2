package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/ondrk/swarmfire/internal/config"
	"github.com/ondrk/swarmfire/internal/loop"
	"golang.org/x/term"
)

func main() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	d := loop.New(reader, os.Stdout, loop.Options{
		Username: config.GetEnv("SWARMFIRE_NAME", ""),
		Muted:    config.GetEnvBool("SWARMFIRE_MUTE", false),
	})

	if err := d.Run(context.Background()); err != nil && err != context.Canceled {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
