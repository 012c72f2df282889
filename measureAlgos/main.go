package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	decoder "github.com/next-exp/tdcpix_go/pkg"
)

var configuration decoder.Configuration

var (
	logger         decoder.SlogLogger
	VerbosityLevel int
)

func init() {
	logger = decoder.NewSlogLogger(os.Stdout, os.Stderr)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	minLevel := flag.Int("min-level", 0, "Lowest deflate level")
	maxLevel := flag.Int("max-level", 9, "Highest deflate level")
	repeat := flag.Int("repeat", 3, "Files written per level")
	flag.Parse()

	var err error
	configuration, err = decoder.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	decoder.SetConfiguration(configuration)
	decoder.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	chunks, err := decoder.LoadChunks(configuration.FileIn)
	if err != nil {
		logger.Error(fmt.Errorf("error decoding %s: %w", configuration.FileIn, err).Error())
		os.Exit(1)
	}
	fmt.Println("Total chunks decoded: ", len(chunks))

	// No database lookups while measuring
	pixelMap := decoder.LocalPixelMap()

	start := time.Now()
	for _, level := range levelRange(*minLevel, *maxLevel) {
		for i := 0; i < *repeat; i++ {
			m, err := measureLevel(level, i, chunks, pixelMap)
			if err != nil {
				logger.Error(err.Error())
				continue
			}
			printMeasurement(os.Stdout, m)
		}
	}

	duration := time.Since(start)
	fmt.Printf("Total time: %d ms\n", duration.Milliseconds())
}

func printConfiguration(config decoder.Configuration, logger decoder.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
