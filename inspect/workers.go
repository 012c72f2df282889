package main

import (
	"fmt"
	"io"

	decoder "github.com/next-exp/tdcpix_go/pkg"
)

type ChunkSummary struct {
	Index         int
	DataWords     int
	PileupPixels  int
	EmptyArbiters int
	FirstStart    uint64
	LastEnd       uint64
	Error         bool
}

func summarize(idx int, chunk decoder.Chunk) ChunkSummary {
	summary := ChunkSummary{Index: idx, DataWords: len(chunk.DataWords)}
	for i, dw := range chunk.DataWords {
		if _, ok := dw.ArbiterRow(); !ok {
			summary.EmptyArbiters++
		}
		summary.PileupPixels += len(dw.PileupCoordinates())
		timing := dw.Timing()
		if i == 0 || timing.Start < summary.FirstStart {
			summary.FirstStart = timing.Start
		}
		if timing.End > summary.LastEnd {
			summary.LastEnd = timing.End
		}
	}
	return summary
}

func worker(id int, session *decoder.Session, jobs <-chan int, results chan<- ChunkSummary) {
	for idx := range jobs {
		results <- summarizeJob(id, session, idx)
	}
}

// summarizeJob flags indexes missing from the session as errors.
func summarizeJob(id int, session *decoder.Session, idx int) ChunkSummary {
	chunk, ok := session.Chunk(idx)
	if !ok {
		logger.Error(fmt.Sprintf("Worker %d: %v", id, &decoder.ErrIndexOutOfRange{Index: idx, Len: session.Len()}))
		return ChunkSummary{Index: idx, Error: true}
	}
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Worker %d processing chunk %d", id, idx), "workers")
	}
	return summarize(idx, chunk)
}

// summarizeChunks only reads the session, chunks are never modified after
// loading so workers can share it.
func summarizeChunks(session *decoder.Session, numWorkers int) []ChunkSummary {
	if numWorkers < 1 {
		numWorkers = 1
	}
	jobs := make(chan int, numWorkers)
	results := make(chan ChunkSummary, 100)

	for w := 1; w <= numWorkers; w++ {
		go worker(w, session, jobs, results)
	}
	go func() {
		for idx := 0; idx < session.Len(); idx++ {
			jobs <- idx
		}
		close(jobs)
	}()

	summaries := make([]ChunkSummary, session.Len())
	for i := 0; i < session.Len(); i++ {
		summary := <-results
		summaries[summary.Index] = summary
	}
	return summaries
}

func printSummaries(w io.Writer, summaries []ChunkSummary) {
	for _, s := range summaries {
		if s.Error {
			fmt.Fprintf(w, "%6d error\n", s.Index)
			continue
		}
		fmt.Fprintf(w, "%6d words %4d pileup %4d empty arbiters %3d span %d-%d ps\n",
			s.Index, s.DataWords, s.PileupPixels, s.EmptyArbiters, s.FirstStart, s.LastEnd)
	}
}
