package main

import (
	"fmt"
	"io"
	"strings"

	decoder "github.com/next-exp/tdcpix_go/pkg"
)

var hitSymbols = map[decoder.HitType]byte{
	decoder.Other:     '.',
	decoder.Hit:       'H',
	decoder.DoubleHit: 'D',
	decoder.Pileup:    'P',
}

// renderGrid draws the pixel matrix, one text row per pixel row, with a
// separator on qchip boundaries.
func renderGrid(w io.Writer, view decoder.ChunkView) {
	grid := view.Grid()
	for y := 0; y < decoder.GRID_HEIGHT; y++ {
		var line strings.Builder
		for x := 0; x < decoder.GRID_WIDTH; x++ {
			if decoder.QchipBoundary(x) {
				line.WriteByte('|')
			}
			line.WriteByte(hitSymbols[grid[x][y]])
		}
		fmt.Fprintf(w, "%2d %s\n", y, line.String())
	}
}
