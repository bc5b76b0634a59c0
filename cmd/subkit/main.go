package main

import (
	"os"

	"github.com/vitormf/pro-video-player-sub011/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
