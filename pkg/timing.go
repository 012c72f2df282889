package decoder

// Calibration constants in picoseconds.
const (
	COARSE_TIME_PS uint64 = 3125 // 3.125 ns
	FINE_TIME_PS   uint64 = 98
)

// Timing of a hit, all values in ps.
type Timing struct {
	Start    uint64
	Duration uint64
	End      uint64
}

// The coarse time selector bits flag counter rollover but are not
// consulted here, times near a wraparound can go backwards.
// TODO: apply rollover correction once the selector semantics are confirmed
// against the TDCpix firmware.

// Leading coarse time: 12 bits * 3.125 ns, leading fine time: 5 bits * 98 ps.
func (d DataWord) StartTime() uint64 {
	leadingCoarseTime := uint64(d.LeadingCoarseTime) * COARSE_TIME_PS
	leadingFineTime := uint64(d.LeadingFineTime) * FINE_TIME_PS
	return leadingCoarseTime + leadingFineTime
}

// Trailing coarse time: 6 bits * 3.125 ns = 200 ns max.
func (d DataWord) Duration() uint64 {
	trailingCoarseTime := uint64(d.TrailingCoarseTime) * COARSE_TIME_PS
	trailingFineTime := uint64(d.TrailingFineTime) * FINE_TIME_PS
	return trailingCoarseTime + trailingFineTime
}

func (d DataWord) EndTime() uint64 {
	return d.StartTime() + d.Duration()
}

func DecodeTime(d DataWord) (uint64, uint64) {
	return d.StartTime(), d.Duration()
}

func (d DataWord) Timing() Timing {
	start, duration := DecodeTime(d)
	return Timing{Start: start, Duration: duration, End: start + duration}
}

// ChunkTimings keeps the data word order so that it can be correlated
// with the hit coordinates.
func ChunkTimings(chunk Chunk) []Timing {
	timings := make([]Timing, len(chunk.DataWords))
	for i, dw := range chunk.DataWords {
		timings[i] = dw.Timing()
	}
	return timings
}
