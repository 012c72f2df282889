package main

// chunkRange returns the half-open range of chunk indexes to process after
// skipping the first skip chunks and keeping at most maxChunks.
func chunkRange(nChunks int, skip int, maxChunks int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if skip > nChunks {
		skip = nChunks
	}
	last := nChunks
	if maxChunks >= 0 && skip+maxChunks < last {
		last = skip + maxChunks
	}
	return skip, last
}
