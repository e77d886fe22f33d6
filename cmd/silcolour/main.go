// Silcolour - silhouette recolouring by catalog cluster
//
// Silcolour replaces the base colours of silhouette images with the colour
// of the cluster each image belongs to.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/silcolour/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
