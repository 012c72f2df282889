package decoder

import (
	"fmt"
	"math/bits"
)

const (
	GROUP_SLOTS      = 9 // arbiter groups per column
	PIXELS_PER_GROUP = 5
)

// Coordinate of a pixel in the matrix, X is the column.
type Coordinate struct {
	X uint8
	Y uint8
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Column and arbiter slot of the group address.
func (d DataWord) Column() uint8 {
	return d.Address / GROUP_SLOTS
}

func (d DataWord) Slot() uint8 {
	return d.Address % GROUP_SLOTS
}

// ArbiterRow returns the position of the lowest bit set in the arbiter mask.
// ok is false when no bit is set.
func (d DataWord) ArbiterRow() (row uint8, ok bool) {
	if d.AddressArbiter == 0 {
		return 0, false
	}
	return uint8(bits.TrailingZeros8(d.AddressArbiter)), true
}

// HitCoordinate uses row 0 when the arbiter mask is empty, which is the
// same pixel as a hit on arbiter bit 0.
func (d DataWord) HitCoordinate() Coordinate {
	row, _ := d.ArbiterRow()
	return Coordinate{
		X: d.Column(),
		Y: d.Slot() + row*GROUP_SLOTS,
	}
}

// GroupCoordinates returns the 5 pixels sharing the data word's arbiter.
func (d DataWord) GroupCoordinates() []Coordinate {
	x := d.Column()
	slot := d.Slot()
	group := make([]Coordinate, PIXELS_PER_GROUP)
	for k := uint8(0); k < PIXELS_PER_GROUP; k++ {
		group[k] = Coordinate{X: x, Y: slot + k*GROUP_SLOTS}
	}
	return group
}

// PileupCoordinates flags the whole group once per pileup bit set, it is
// not narrowed to the flagged pixel. Duplicates are kept.
func (d DataWord) PileupCoordinates() []Coordinate {
	if d.AddressPileup == 0 {
		return nil
	}
	nBits := bits.OnesCount8(d.AddressPileup & 0x1F)
	pileup := make([]Coordinate, 0, nBits*PIXELS_PER_GROUP)
	for b := 0; b < PIXELS_PER_GROUP; b++ {
		if d.AddressPileup&(1<<b) == 0 {
			continue
		}
		pileup = append(pileup, d.GroupCoordinates()...)
	}
	return pileup
}

func MapAddress(d DataWord) (Coordinate, []Coordinate) {
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("group: %d, arbiter: %05b, pileup: %05b",
			d.Address, d.AddressArbiter, d.AddressPileup)
		logger.Info(message, "mapping")
	}
	return d.HitCoordinate(), d.PileupCoordinates()
}

// MapChunk returns one hit per data word, in order, and the pileup pixels
// of the whole chunk.
func MapChunk(chunk Chunk) ([]Coordinate, []Coordinate) {
	hits := make([]Coordinate, 0, len(chunk.DataWords))
	pileups := make([]Coordinate, 0)
	for _, dw := range chunk.DataWords {
		hit, pileup := MapAddress(dw)
		hits = append(hits, hit)
		pileups = append(pileups, pileup...)
	}
	return hits, pileups
}
