package decoder

import (
	"fmt"
	"strconv"
)

// FrameWord is the trailer of every readout line.
//
//	42..37: qchip collision count
//	36..28: hit counter
//	27..0 : frame counter
type FrameWord struct {
	Raw                 uint64
	QchipCollisionCount uint8
	HitCounter          uint16
	FrameCounter        uint32
}

// DataWord is a single pixel hit.
//
//	47    : data selector
//	46..40: address
//	39..35: address arbiter
//	34..30: address pileup
//	29    : leading coarse time selector
//	28..17: leading coarse time
//	16..12: leading fine time
//	11    : trailing coarse time selector
//	10..5 : trailing coarse time
//	4..0  : trailing fine time
type DataWord struct {
	Raw                        uint64
	DataSelector               uint8
	Address                    uint8
	AddressArbiter             uint8
	AddressPileup              uint8
	LeadingCoarseTimeSelector  uint8
	LeadingCoarseTime          uint16
	LeadingFineTime            uint8
	TrailingCoarseTimeSelector uint8
	TrailingCoarseTime         uint8
	TrailingFineTime           uint8
}

func parseHexWord(token string) (uint64, error) {
	raw, err := strconv.ParseUint(token, 16, 64)
	if err != nil {
		return 0, &ErrMalformedWord{Token: token, Err: err}
	}
	return raw, nil
}

func DecodeFrameWord(token string) (FrameWord, error) {
	raw, err := parseHexWord(token)
	if err != nil {
		return FrameWord{}, err
	}
	return NewFrameWord(raw), nil
}

func NewFrameWord(raw uint64) FrameWord {
	QchipCollisionCount := uint8((raw >> 37) & 0x3F)
	// Hit counter spans 9 bits (36..28) but is masked with 0xFF,
	// bit 36 is dropped.
	HitCounter := uint16((raw >> 28) & 0xFF)
	FrameCounter := uint32(raw & 0xFFFFFFF)

	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Frame word 0x%012x: collisions %d, hits %d, frame %d",
			raw, QchipCollisionCount, HitCounter, FrameCounter)
		logger.Info(message, "words")
	}

	return FrameWord{
		Raw:                 raw,
		QchipCollisionCount: QchipCollisionCount,
		HitCounter:          HitCounter,
		FrameCounter:        FrameCounter,
	}
}

func DecodeDataWord(token string) (DataWord, error) {
	raw, err := parseHexWord(token)
	if err != nil {
		return DataWord{}, err
	}
	return NewDataWord(raw), nil
}

func NewDataWord(raw uint64) DataWord {
	DataSelector := uint8((raw >> 47) & 0x1)
	Address := uint8((raw >> 40) & 0x7F)
	AddressArbiter := uint8((raw >> 35) & 0x1F)
	AddressPileup := uint8((raw >> 30) & 0x1F)
	LeadingCoarseTimeSelector := uint8((raw >> 29) & 0x1)
	LeadingCoarseTime := uint16((raw >> 17) & 0xFFF)
	LeadingFineTime := uint8((raw >> 12) & 0x1F)
	TrailingCoarseTimeSelector := uint8((raw >> 11) & 0x1)
	TrailingCoarseTime := uint8((raw >> 5) & 0x3F)
	TrailingFineTime := uint8(raw & 0x1F)

	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Data word 0x%012x: address %d, arbiter %05b, pileup %05b",
			raw, Address, AddressArbiter, AddressPileup)
		logger.Info(message, "words")
	}

	return DataWord{
		Raw:                        raw,
		DataSelector:               DataSelector,
		Address:                    Address,
		AddressArbiter:             AddressArbiter,
		AddressPileup:              AddressPileup,
		LeadingCoarseTimeSelector:  LeadingCoarseTimeSelector,
		LeadingCoarseTime:          LeadingCoarseTime,
		LeadingFineTime:            LeadingFineTime,
		TrailingCoarseTimeSelector: TrailingCoarseTimeSelector,
		TrailingCoarseTime:         TrailingCoarseTime,
		TrailingFineTime:           TrailingFineTime,
	}
}

// Encode packs the decoded fields back into their bit positions.
// Bits outside the field table (63..48) are not reproduced.
func (d DataWord) Encode() uint64 {
	return uint64(d.DataSelector&0x1)<<47 |
		uint64(d.Address&0x7F)<<40 |
		uint64(d.AddressArbiter&0x1F)<<35 |
		uint64(d.AddressPileup&0x1F)<<30 |
		uint64(d.LeadingCoarseTimeSelector&0x1)<<29 |
		uint64(d.LeadingCoarseTime&0xFFF)<<17 |
		uint64(d.LeadingFineTime&0x1F)<<12 |
		uint64(d.TrailingCoarseTimeSelector&0x1)<<11 |
		uint64(d.TrailingCoarseTime&0x3F)<<5 |
		uint64(d.TrailingFineTime&0x1F)
}

// Encode packs the frame fields back. Bit 36 of the hit counter is never
// set since decoding keeps only 8 bits.
func (f FrameWord) Encode() uint64 {
	return uint64(f.QchipCollisionCount&0x3F)<<37 |
		uint64(f.HitCounter&0xFF)<<28 |
		uint64(f.FrameCounter&0xFFFFFFF)
}

func (d DataWord) String() string {
	return fmt.Sprintf("%012x", d.Raw)
}

func (f FrameWord) String() string {
	return fmt.Sprintf("%012x", f.Raw)
}
