package decoder

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Pixel matrix of one chip
const (
	GRID_WIDTH    = 40
	GRID_HEIGHT   = 45
	QCHIP_COLUMNS = 10
)

// ChunkView holds everything derived from a single chunk. It is never
// stored with the chunk, it can always be rebuilt with NewChunkView.
type ChunkView struct {
	Hits    []Coordinate
	Pileups []Coordinate
	Groups  []Coordinate
	Timings []Timing
	Lanes   []int
}

func NewChunkView(chunk Chunk) ChunkView {
	hits, pileups := MapChunk(chunk)
	groups := make([]Coordinate, 0, len(chunk.DataWords)*PIXELS_PER_GROUP)
	for _, dw := range chunk.DataWords {
		groups = append(groups, dw.GroupCoordinates()...)
	}
	return ChunkView{
		Hits:    hits,
		Pileups: pileups,
		Groups:  groups,
		Timings: ChunkTimings(chunk),
		Lanes:   TimelineLanes(chunk),
	}
}

type HitType int

const (
	Other HitType = iota
	Hit
	DoubleHit
	Pileup
)

func (h HitType) String() string {
	switch h {
	case Hit:
		return "Hit"
	case DoubleHit:
		return "DoubleHit"
	case Pileup:
		return "Pileup"
	default:
		return "Other"
	}
}

// Classify a pixel: hit and pileup at once is a double hit.
func (v ChunkView) Classify(c Coordinate) HitType {
	hit := slices.Contains(v.Hits, c)
	pileup := slices.Contains(v.Pileups, c)
	switch {
	case hit && pileup:
		return DoubleHit
	case hit:
		return Hit
	case pileup:
		return Pileup
	default:
		return Other
	}
}

// Grid returns the classification of every pixel, indexed [x][y].
func (v ChunkView) Grid() [GRID_WIDTH][GRID_HEIGHT]HitType {
	var grid [GRID_WIDTH][GRID_HEIGHT]HitType
	mark := func(coords []Coordinate, hitType HitType) {
		for _, c := range coords {
			if int(c.X) >= GRID_WIDTH || int(c.Y) >= GRID_HEIGHT {
				continue
			}
			if grid[c.X][c.Y] != Other && grid[c.X][c.Y] != hitType {
				grid[c.X][c.Y] = DoubleHit
				continue
			}
			grid[c.X][c.Y] = hitType
		}
	}
	mark(v.Hits, Hit)
	mark(v.Pileups, Pileup)
	return grid
}

func QchipBoundary(x int) bool {
	return x%QCHIP_COLUMNS == 0 && x != 0
}

// TimelineLanes places each data word on the lane given by the rank of
// its address among the distinct addresses of the chunk.
func TimelineLanes(chunk Chunk) []int {
	addresses := make(map[uint8]struct{})
	for _, dw := range chunk.DataWords {
		addresses[dw.Address] = struct{}{}
	}
	sorted := maps.Keys(addresses)
	slices.Sort(sorted)

	lanes := make([]int, len(chunk.DataWords))
	for i, dw := range chunk.DataWords {
		lane, _ := slices.BinarySearch(sorted, dw.Address)
		lanes[i] = lane
	}
	return lanes
}
