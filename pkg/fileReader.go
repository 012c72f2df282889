package decoder

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ReadInputFile returns the full content of a readout file, decompressing
// it when the name ends in ".zst".
func ReadInputFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ErrFileUnreadable{Filename: filename, Err: err}
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Read %d bytes from %s", len(data), filename)
		logger.Info(message, "fileReader")
	}

	if !strings.HasSuffix(filename, ".zst") {
		return data, nil
	}

	decompressed, err := decompress(data)
	if err != nil {
		return nil, &ErrFileUnreadable{Filename: filename, Err: err}
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Decompressed %d bytes", len(decompressed))
		logger.Info(message, "fileReader")
	}
	return decompressed, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
