package decoder

import (
	"errors"
	"fmt"
	"sort"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type Writer struct {
	File          *hdf5.File
	Filename      string
	RunGroup      *hdf5.Group
	FramesGroup   *hdf5.Group
	HitsGroup     *hdf5.Group
	SensorsGroup  *hdf5.Group
	RunInfoTable  *hdf5.Dataset
	FramesTable   *hdf5.Dataset
	HitsTable     *hdf5.Dataset
	PileupTable   *hdf5.Dataset
	PixelMapTable *hdf5.Dataset
	PixelMap      PixelMap
	RunNumber     int
	ChunkCounter  int
}

func NewWriter(filename string, pixelMap PixelMap, runNumber int) (*Writer, error) {
	var err error
	writer := &Writer{Filename: filename, PixelMap: pixelMap, RunNumber: runNumber}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "writer")
	}

	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	groups := []struct {
		group **hdf5.Group
		name  string
	}{
		{&writer.RunGroup, "Run"},
		{&writer.FramesGroup, "Frames"},
		{&writer.HitsGroup, "Hits"},
		{&writer.SensorsGroup, "Sensors"},
	}
	for _, g := range groups {
		if *g.group, err = createGroup(writer.File, g.name); err != nil {
			writer.Close()
			return nil, err
		}
	}

	tables := []struct {
		table    **hdf5.Dataset
		group    *hdf5.Group
		name     string
		datatype interface{}
	}{
		{&writer.RunInfoTable, writer.RunGroup, "runInfo", RunInfoHDF5{}},
		{&writer.FramesTable, writer.FramesGroup, "frames", FrameHDF5{}},
		{&writer.HitsTable, writer.HitsGroup, "hits", HitHDF5{}},
		{&writer.PileupTable, writer.HitsGroup, "pileup", PileupHDF5{}},
		{&writer.PixelMapTable, writer.SensorsGroup, "DataPixel", PixelMappingHDF5{}},
	}
	for _, t := range tables {
		if *t.table, err = createTable(t.group, t.name, t.datatype); err != nil {
			writer.Close()
			return nil, err
		}
	}

	if err := writer.writeHeader(); err != nil {
		writer.Close()
		return nil, err
	}
	return writer, nil
}

// writeHeader stores the run number and the pixel map, so they are present
// even when no chunk is written.
func (w *Writer) writeHeader() error {
	if err := writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(w.RunNumber)}); err != nil {
		return fmt.Errorf("error writing run info: %w", err)
	}
	pixels := sortPixelsByPixelID(w.PixelMap)
	if err := writeArrayToTable(w.PixelMapTable, &pixels); err != nil {
		return fmt.Errorf("error writing pixel map: %w", err)
	}
	return nil
}

func sortPixelsByPixelID(pixelMap PixelMap) []PixelMappingHDF5 {
	// The array MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	sorted := make([]PixelMappingHDF5, len(pixelMap.ToPixelID))
	count := 0
	for c, pixelID := range pixelMap.ToPixelID {
		sorted[count] = PixelMappingHDF5{pixel_id: pixelID, x: c.X, y: c.Y}
		count++
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].pixel_id < sorted[j].pixel_id
	})
	return sorted
}

func frameRow(chunkIdx int, chunk Chunk) FrameHDF5 {
	return FrameHDF5{
		chunk:           int32(chunkIdx),
		frame_counter:   chunk.FrameWord.FrameCounter,
		hit_counter:     chunk.FrameWord.HitCounter,
		qchip_collision: chunk.FrameWord.QchipCollisionCount,
		data_words:      int32(len(chunk.DataWords)),
	}
}

func hitRows(chunkIdx int, chunk Chunk, pixelMap PixelMap) ([]HitHDF5, []PileupHDF5) {
	hits := make([]HitHDF5, len(chunk.DataWords))
	pileups := make([]PileupHDF5, 0)
	for i, dw := range chunk.DataWords {
		hit, pileup := MapAddress(dw)
		start, duration := DecodeTime(dw)
		var pileupFlag uint8
		if dw.AddressPileup != 0 {
			pileupFlag = 1
		}
		hits[i] = HitHDF5{
			chunk:       int32(chunkIdx),
			word:        int32(i),
			x:           hit.X,
			y:           hit.Y,
			pixel_id:    pixelMap.PixelID(hit),
			start_ps:    start,
			duration_ps: duration,
			pileup:      pileupFlag,
		}
		for _, c := range pileup {
			pileups = append(pileups, PileupHDF5{chunk: int32(chunkIdx), x: c.X, y: c.Y})
		}
	}
	return hits, pileups
}

// WriteChunk appends a chunk to the file. chunkIdx is the position of the
// chunk in the readout file.
func (w *Writer) WriteChunk(chunkIdx int, chunk Chunk) error {
	if err := writeEntryToTable(w.FramesTable, frameRow(chunkIdx, chunk)); err != nil {
		return fmt.Errorf("error writing frame of chunk %d: %w", chunkIdx, err)
	}
	hits, pileups := hitRows(chunkIdx, chunk, w.PixelMap)
	if err := writeArrayToTable(w.HitsTable, &hits); err != nil {
		return fmt.Errorf("error writing hits of chunk %d: %w", chunkIdx, err)
	}
	if err := writeArrayToTable(w.PileupTable, &pileups); err != nil {
		return fmt.Errorf("error writing pileup of chunk %d: %w", chunkIdx, err)
	}

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Chunk %d written: %d hits, %d pileup pixels", chunkIdx, len(hits), len(pileups))
		logger.Info(message, "writer")
	}
	w.ChunkCounter++
	return nil
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file %s, %d chunks", w.Filename, w.ChunkCounter), "writer")
	}
	var errs []error

	datasets := []struct {
		dset *hdf5.Dataset
		name string
	}{
		{w.RunInfoTable, "run info table"},
		{w.FramesTable, "frames table"},
		{w.HitsTable, "hits table"},
		{w.PileupTable, "pileup table"},
		{w.PixelMapTable, "pixel mapping table"},
	}
	for _, d := range datasets {
		if d.dset == nil {
			continue
		}
		if err := d.dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", d.name, err))
		}
	}

	groups := []struct {
		group *hdf5.Group
		name  string
	}{
		{w.RunGroup, "run group"},
		{w.FramesGroup, "frames group"},
		{w.HitsGroup, "hits group"},
		{w.SensorsGroup, "sensors group"},
	}
	for _, g := range groups {
		if g.group == nil {
			continue
		}
		if err := g.group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", g.name, err))
		}
	}

	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
