package main

import (
	"fmt"

	decoder "github.com/next-exp/tdcpix_go/pkg"
)

func printConfiguration(config decoder.Configuration, logger decoder.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Chunk index: %d", config.ChunkIndex), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
}
