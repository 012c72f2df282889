package main

import (
	"fmt"
	"io"
	"os"
	"time"

	decoder "github.com/next-exp/tdcpix_go/pkg"
)

type Measurement struct {
	Level      int
	Repetition int
	Chunks     int
	Duration   time.Duration
	Size       int64
}

// levelRange clamps to the deflate levels accepted by HDF5.
func levelRange(low int, high int) []int {
	if low < 0 {
		low = 0
	}
	if high > 9 {
		high = 9
	}
	levels := make([]int, 0, 10)
	for level := low; level <= high; level++ {
		levels = append(levels, level)
	}
	return levels
}

// measureLevel writes every chunk to FileOut with the given deflate level.
func measureLevel(level int, repetition int, chunks []decoder.Chunk, pixelMap decoder.PixelMap) (Measurement, error) {
	m := Measurement{Level: level, Repetition: repetition, Chunks: len(chunks)}
	configuration.CompressionLevel = level
	decoder.SetConfiguration(configuration)

	start := time.Now()
	writer, err := decoder.NewWriter(configuration.FileOut, pixelMap, configuration.RunNumber)
	if err != nil {
		return m, fmt.Errorf("error creating writer: %w", err)
	}
	for i, chunk := range chunks {
		if err := writer.WriteChunk(i, chunk); err != nil {
			writer.Close()
			return m, err
		}
	}
	if err := writer.Close(); err != nil {
		return m, err
	}
	m.Duration = time.Since(start)

	fileInfo, err := os.Stat(configuration.FileOut)
	if err != nil {
		return m, fmt.Errorf("error getting file info: %w", err)
	}
	m.Size = fileInfo.Size()
	if VerbosityLevel > 1 {
		logger.Info(fmt.Sprintf("Level %d repetition %d done", level, repetition), "measure")
	}
	return m, nil
}

func printMeasurement(w io.Writer, m Measurement) {
	fmt.Fprintf(w, "(hdf5, comp %d, run %d) %d chunks. Time: %d ms, size %d bytes\n",
		m.Level, m.Repetition, m.Chunks, m.Duration.Milliseconds(), m.Size)
}
