package main

import (
	"bytes"
	"strings"
	"testing"

	decoder "github.com/next-exp/tdcpix_go/pkg"
)

func testSession(t *testing.T, n int) *decoder.Session {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("9420c0c87143 891000000000 e8005000eb00\n")
	}
	b.WriteString("0000000000a0 e8005000eb00\n")
	chunks, err := decoder.Parse([]byte(b.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	session := decoder.NewSession()
	session.Replace("memory", chunks)
	return session
}

func TestSummarize(t *testing.T) {
	session := testSession(t, 1)
	chunk, _ := session.Chunk(0)
	summary := summarize(0, chunk)
	if summary.DataWords != 2 || summary.PileupPixels != 10 || summary.EmptyArbiters != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	// 891000000000 carries no timing, 9420c0c87143 ends at 344730 ps
	if summary.FirstStart != 0 || summary.LastEnd != 344730 {
		t.Fatalf("expected span 0-344730 got %d-%d", summary.FirstStart, summary.LastEnd)
	}

	last, _ := session.Chunk(1)
	if summary := summarize(1, last); summary.EmptyArbiters != 1 {
		t.Fatalf("expected one empty arbiter got %d", summary.EmptyArbiters)
	}
}

func TestSummarizeJobMissingChunk(t *testing.T) {
	session := testSession(t, 2)
	summary := summarizeJob(1, session, session.Len())
	if !summary.Error || summary.Index != session.Len() {
		t.Fatalf("expected error summary for index %d got %+v", session.Len(), summary)
	}
	if summary := summarizeJob(1, session, 0); summary.Error || summary.DataWords != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSummarizeChunksKeepsOrder(t *testing.T) {
	session := testSession(t, 200)
	for _, numWorkers := range []int{0, 1, 4, 16} {
		summaries := summarizeChunks(session, numWorkers)
		if len(summaries) != session.Len() {
			t.Fatalf("expected %d summaries got %d", session.Len(), len(summaries))
		}
		for i, s := range summaries {
			if s.Index != i || s.Error {
				t.Fatalf("workers %d: unexpected summary at %d: %+v", numWorkers, i, s)
			}
		}
		if summaries[200].DataWords != 1 || summaries[199].DataWords != 2 {
			t.Fatalf("workers %d: summaries out of order", numWorkers)
		}
	}
}

func TestPrintChunk(t *testing.T) {
	session := testSession(t, 1)
	var out bytes.Buffer
	printChunk(&out, session)
	text := out.String()
	if !strings.HasPrefix(text, "chunk 0: frame 60160, hit counter 5") {
		t.Fatalf("unexpected header %q", strings.SplitN(text, "\n", 2)[0])
	}
	// chunk header, two words, pileup line and the grid
	if lines := strings.Count(text, "\n"); lines != 4+decoder.GRID_HEIGHT {
		t.Fatalf("expected %d lines got %d", 4+decoder.GRID_HEIGHT, lines)
	}

	var empty bytes.Buffer
	printChunk(&empty, decoder.NewSession())
	if empty.String() != "no chunk loaded\n" {
		t.Fatalf("unexpected output for empty session %q", empty.String())
	}
}

func TestRenderGrid(t *testing.T) {
	view := decoder.ChunkView{
		Hits:    []decoder.Coordinate{{X: 1, Y: 9}, {X: 2, Y: 20}},
		Pileups: []decoder.Coordinate{{X: 2, Y: 20}, {X: 12, Y: 0}},
	}
	var out bytes.Buffer
	renderGrid(&out, view)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != decoder.GRID_HEIGHT {
		t.Fatalf("expected %d rows got %d", decoder.GRID_HEIGHT, len(lines))
	}
	// three separators between the four qchips
	if len(lines[0]) != 3+decoder.GRID_WIDTH+3 {
		t.Fatalf("unexpected row width %d: %q", len(lines[0]), lines[0])
	}
	cell := func(x, y int) byte {
		return lines[y][3+x+x/decoder.QCHIP_COLUMNS]
	}
	if cell(1, 9) != 'H' || cell(2, 20) != 'D' || cell(12, 0) != 'P' || cell(0, 0) != '.' {
		t.Fatalf("unexpected cells %q %q %q", lines[0], lines[9], lines[20])
	}
}
