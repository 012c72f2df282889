package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	decoder "github.com/next-exp/tdcpix_go/pkg"
)

var dbConn *sqlx.DB
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
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	if err := run(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	start := time.Now()

	chunks, err := decoder.LoadChunks(configuration.FileIn)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", configuration.FileIn, err)
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of chunks: %d", len(chunks))
		logger.Info(message, "main")
	}

	pixelMap, err := loadPixelMap()
	if err != nil {
		return err
	}

	if !configuration.WriteData {
		logger.Info("write_data is disabled, nothing written", "main")
		return nil
	}

	writer, err := decoder.NewWriter(configuration.FileOut, pixelMap, configuration.RunNumber)
	if err != nil {
		return fmt.Errorf("error creating writer: %w", err)
	}

	first, last := chunkRange(len(chunks), configuration.Skip, configuration.MaxChunks)
	for i := first; i < last; i++ {
		if err := writer.WriteChunk(i, chunks[i]); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	duration := time.Since(start)
	message := fmt.Sprintf("Chunks written: %d. Total time: %d ms", last-first, duration.Milliseconds())
	logger.Info(message, "main")
	return nil
}

func loadPixelMap() (decoder.PixelMap, error) {
	if configuration.NoDB {
		return decoder.LocalPixelMap(), nil
	}

	var err error
	dbConn, err = decoder.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		return decoder.PixelMap{}, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()

	pixelMap, err := decoder.GetPixelMapFromDB(dbConn, configuration.RunNumber)
	if err != nil {
		return decoder.PixelMap{}, fmt.Errorf("error getting pixel map from database: %w", err)
	}
	return pixelMap, nil
}
