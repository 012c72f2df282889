package decoder

import "fmt"

// Session owns the chunks of the loaded file and the chunk currently under
// analysis. The chunk list is only replaced as a whole by Load; a Session
// is not safe for concurrent use.
type Session struct {
	Filename string
	chunks   []Chunk
	selected int
	view     ChunkView
}

func NewSession() *Session {
	return &Session{}
}

// Load parses filename and, only if the whole file decodes, replaces the
// chunks and selects the first one.
func (s *Session) Load(filename string) error {
	chunks, err := LoadChunks(filename)
	if err != nil {
		logger.Error(fmt.Errorf("error loading %s: %w", filename, err).Error())
		return err
	}
	s.Replace(filename, chunks)
	return nil
}

func (s *Session) Replace(filename string, chunks []Chunk) {
	s.Filename = filename
	s.chunks = chunks
	s.selected = 0
	s.view = ChunkView{}
	if len(chunks) > 0 {
		s.view = NewChunkView(chunks[0])
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Session loaded %d chunks from %s", len(chunks), filename)
		logger.Info(message, "session")
	}
}

func (s *Session) Len() int {
	return len(s.chunks)
}

// Chunk returns false for indexes out of range.
func (s *Session) Chunk(idx int) (Chunk, bool) {
	if idx < 0 || idx >= len(s.chunks) {
		return Chunk{}, false
	}
	return s.chunks[idx], true
}

// Select changes the chunk under analysis. An out of range index is
// reported and the previous selection is kept.
func (s *Session) Select(idx int) error {
	chunk, ok := s.Chunk(idx)
	if !ok {
		return &ErrIndexOutOfRange{Index: idx, Len: len(s.chunks)}
	}
	s.selected = idx
	s.view = NewChunkView(chunk)
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Selected chunk %d: %d hits, %d pileup pixels",
			idx, len(s.view.Hits), len(s.view.Pileups))
		logger.Info(message, "session")
	}
	return nil
}

func (s *Session) Selected() int {
	return s.selected
}

func (s *Session) View() ChunkView {
	return s.view
}
