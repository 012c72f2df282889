package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	decoder "github.com/next-exp/tdcpix_go/pkg"
)

var configuration decoder.Configuration

var logger decoder.SlogLogger

func init() {
	logger = decoder.NewSlogLogger(os.Stdout, os.Stderr)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	fileIn := flag.String("file", "", "Readout file, overrides file_in")
	chunkIdx := flag.Int("chunk", -1, "Chunk index, overrides chunk_index")
	summary := flag.Bool("summary", false, "Print per-chunk statistics for the whole file")
	flag.Parse()

	configuration = decoder.DefaultConfiguration()
	if *configFilename != "" {
		var err error
		configuration, err = decoder.LoadConfiguration(*configFilename)
		if err != nil {
			message := fmt.Errorf("Error reading configuration file: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
	}
	if *fileIn != "" {
		configuration.FileIn = *fileIn
	}
	if *chunkIdx >= 0 {
		configuration.ChunkIndex = *chunkIdx
	}
	decoder.SetConfiguration(configuration)
	decoder.SetLogger(logger)

	if configuration.Verbosity > 0 {
		printConfiguration(configuration, logger)
	}

	session := decoder.NewSession()
	if err := session.Load(configuration.FileIn); err != nil {
		os.Exit(1)
	}
	fmt.Printf("chunks: %d\n", session.Len())

	if *summary {
		summaries := summarizeChunks(session, configuration.NumWorkers)
		printSummaries(os.Stdout, summaries)
		return
	}

	if err := session.Select(configuration.ChunkIndex); err != nil {
		// Keep the previous selection
		logger.Error(err.Error())
	}
	printChunk(os.Stdout, session)
}

func printChunk(w io.Writer, session *decoder.Session) {
	idx := session.Selected()
	chunk, ok := session.Chunk(idx)
	if !ok {
		fmt.Fprintln(w, "no chunk loaded")
		return
	}
	view := session.View()

	fmt.Fprintf(w, "chunk %d: frame %d, hit counter %d, qchip collisions %d\n",
		idx, chunk.FrameWord.FrameCounter, chunk.FrameWord.HitCounter, chunk.FrameWord.QchipCollisionCount)
	for i, dw := range chunk.DataWords {
		timing := view.Timings[i]
		row := "-"
		if r, ok := dw.ArbiterRow(); ok {
			row = fmt.Sprint(r)
		}
		fmt.Fprintf(w, "%4d %s group %3d arbiter %05b row %s pileup %05b hit %-9s lane %2d start %.3f us duration %.3f ns\n",
			i, dw, dw.Address, dw.AddressArbiter, row, dw.AddressPileup, view.Hits[i], view.Lanes[i],
			float64(timing.Start)/1e6, float64(timing.Duration)/1e3)
	}
	fmt.Fprintf(w, "pileup pixels: %v\n", view.Pileups)
	renderGrid(w, view)
}
