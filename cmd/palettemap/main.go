// Palettemap - map images onto colour palettes
//
// Palettemap converts an image so that every pixel uses only colours from a
// palette file or a built-in base16/base24 scheme.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/palettemap/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
