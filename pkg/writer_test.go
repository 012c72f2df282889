package decoder

import (
	"errors"
	"path/filepath"
	"testing"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

func TestFrameRow(t *testing.T) {
	chunks, err := Parse([]byte(sampleLine))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	row := frameRow(7, chunks[0])
	if row.chunk != 7 || row.frame_counter != 60160 || row.hit_counter != 5 || row.qchip_collision != 0 || row.data_words != 5 {
		t.Fatalf("unexpected frame row %+v", row)
	}
}

func TestHitRows(t *testing.T) {
	chunk := Chunk{DataWords: []DataWord{
		NewDataWord(0x891000000000),
		NewDataWord(0x9420c0c87143),
	}}
	pixelMap := NewPixelMap()
	pixelMap.Add(PixelMappingEntry{Col: 1, Row: 9, PixelID: 500})

	hits, pileups := hitRows(3, chunk, pixelMap)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits got %d", len(hits))
	}
	first, second := hits[0], hits[1]
	if first.word != 0 || first.x != 1 || first.y != 9 || first.pixel_id != 500 || first.pileup != 0 {
		t.Fatalf("unexpected first hit %+v", first)
	}
	if first.start_ps != 0 || first.duration_ps != 0 {
		t.Fatalf("expected no timing got %d %d", first.start_ps, first.duration_ps)
	}
	if second.chunk != 3 || second.word != 1 || second.x != 2 || second.y != 20 || second.pileup != 1 {
		t.Fatalf("unexpected second hit %+v", second)
	}
	if second.pixel_id != 2*45+20 || second.start_ps != 313186 || second.duration_ps != 31544 {
		t.Fatalf("unexpected second hit %+v", second)
	}
	if len(pileups) != 10 {
		t.Fatalf("expected 10 pileup rows got %d", len(pileups))
	}
	for _, p := range pileups {
		if p.chunk != 3 || p.x != 2 || p.y%GROUP_SLOTS != 2 {
			t.Fatalf("unexpected pileup row %+v", p)
		}
	}
}

func TestSortPixelsByPixelID(t *testing.T) {
	pixelMap := NewPixelMap()
	pixelMap.Add(PixelMappingEntry{Col: 0, Row: 0, PixelID: 30})
	pixelMap.Add(PixelMappingEntry{Col: 5, Row: 5, PixelID: 10})
	pixelMap.Add(PixelMappingEntry{Col: 9, Row: 1, PixelID: 20})

	sorted := sortPixelsByPixelID(pixelMap)
	want := []PixelMappingHDF5{{10, 5, 5}, {20, 9, 1}, {30, 0, 0}}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("position %d: expected %+v got %+v", i, want[i], sorted[i])
		}
	}
}

func TestNewWriterOutputError(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "missing", "out.h5")
	_, err := NewWriter(filename, LocalPixelMap(), 1)
	var openErr *ErrOpenFile
	if !errors.As(err, &openErr) {
		t.Fatalf("expected ErrOpenFile got %v", err)
	}
	if openErr.Filename != filename {
		t.Fatalf("expected %s got %s", filename, openErr.Filename)
	}
	var unreadable *ErrFileUnreadable
	if errors.As(err, &unreadable) {
		t.Fatalf("output error reported as unreadable input: %v", err)
	}
}

func tableRows(t *testing.T, file *hdf5.File, name string) uint {
	t.Helper()
	dset, err := file.OpenDataset(name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer dset.Close()
	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		t.Fatalf("dims %s: %v", name, err)
	}
	return dims[0]
}

func TestWriterHeaderWithoutChunks(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.h5")
	pixelMap := LocalPixelMap()
	writer, err := NewWriter(filename, pixelMap, 14780)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		t.Fatalf("open %s: %v", filename, err)
	}
	defer file.Close()
	if rows := tableRows(t, file, "Run/runInfo"); rows != 1 {
		t.Fatalf("expected 1 run info row got %d", rows)
	}
	if rows := tableRows(t, file, "Sensors/DataPixel"); rows != uint(len(pixelMap.ToPixelID)) {
		t.Fatalf("expected %d pixel rows got %d", len(pixelMap.ToPixelID), rows)
	}
	if rows := tableRows(t, file, "Frames/frames"); rows != 0 {
		t.Fatalf("expected no frame rows got %d", rows)
	}
}
