package decoder

import (
	"bytes"
	"errors"
	"fmt"
)

// Chunk is one acquisition frame: the data words of a line followed by
// its frame word.
type Chunk struct {
	DataWords []DataWord
	FrameWord FrameWord
}

// Parse decodes a whole readout file. Either every line decodes or no
// chunk is returned.
func Parse(contents []byte) ([]Chunk, error) {
	lines := bytes.Split(contents, []byte("\n"))
	// Trailing newline does not open a new line
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	chunks := make([]Chunk, 0, len(lines))
	for i, line := range lines {
		chunk, err := parseLine(line)
		if err != nil {
			return nil, setLine(err, i+1)
		}
		if configuration.Verbosity > 1 {
			message := fmt.Sprintf("Chunk %d: %d data words, frame %d",
				len(chunks), len(chunk.DataWords), chunk.FrameWord.FrameCounter)
			logger.Info(message, "chunks")
		}
		chunks = append(chunks, chunk)
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Parsed %d chunks", len(chunks))
		logger.Info(message, "chunks")
	}
	return chunks, nil
}

func parseLine(line []byte) (Chunk, error) {
	tokens := bytes.Fields(line)
	if len(tokens) == 0 {
		return Chunk{}, &ErrEmptyLine{}
	}

	last := len(tokens) - 1
	frameWord, err := DecodeFrameWord(string(tokens[last]))
	if err != nil {
		return Chunk{}, err
	}

	dataWords := make([]DataWord, 0, last)
	for _, token := range tokens[:last] {
		dataWord, err := DecodeDataWord(string(token))
		if err != nil {
			return Chunk{}, err
		}
		dataWords = append(dataWords, dataWord)
	}

	return Chunk{DataWords: dataWords, FrameWord: frameWord}, nil
}

func setLine(err error, line int) error {
	var malformed *ErrMalformedWord
	if errors.As(err, &malformed) {
		malformed.Line = line
	}
	var empty *ErrEmptyLine
	if errors.As(err, &empty) {
		empty.Line = line
	}
	return err
}

// LoadChunks reads and parses a readout file.
func LoadChunks(filename string) ([]Chunk, error) {
	contents, err := ReadInputFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(contents)
}
