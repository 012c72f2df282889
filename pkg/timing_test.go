package decoder

import "testing"

func TestDecodeTime(t *testing.T) {
	dw := NewDataWord(0x9420c0c87143)
	start, duration := DecodeTime(dw)
	if start != 313186 {
		t.Fatalf("expected start 313186 ps got %d", start)
	}
	if duration != 31544 {
		t.Fatalf("expected duration 31544 ps got %d", duration)
	}
	if dw.EndTime() != 344730 {
		t.Fatalf("expected end 344730 ps got %d", dw.EndTime())
	}
	timing := dw.Timing()
	if timing.Start != start || timing.Duration != duration || timing.End != start+duration {
		t.Fatalf("unexpected timing %+v", timing)
	}
}

func TestStartTimeIsLinearInCoarseTime(t *testing.T) {
	base := DataWord{LeadingFineTime: 17, TrailingCoarseTime: 3}
	fine := uint64(17) * FINE_TIME_PS
	for _, coarse := range []uint16{1, 7, 100, 1000, 2047} {
		single := base
		single.LeadingCoarseTime = coarse
		double := base
		double.LeadingCoarseTime = 2 * coarse

		singleCoarse := single.StartTime() - fine
		doubleCoarse := double.StartTime() - fine
		if singleCoarse != uint64(coarse)*3125 {
			t.Fatalf("coarse %d: expected %d ps got %d", coarse, uint64(coarse)*3125, singleCoarse)
		}
		if doubleCoarse != 2*singleCoarse {
			t.Fatalf("coarse %d: expected doubled contribution %d got %d", coarse, 2*singleCoarse, doubleCoarse)
		}
	}
}

func TestSelectorBitsDoNotChangeTime(t *testing.T) {
	dw := NewDataWord(0x9420c0c87143)
	withSelectors := NewDataWord(0x9420c0c87143 | 1<<29 | 1<<11)
	if withSelectors.LeadingCoarseTimeSelector != 1 || withSelectors.TrailingCoarseTimeSelector != 1 {
		t.Fatalf("expected both selectors set got %+v", withSelectors)
	}
	if dw.Timing() != withSelectors.Timing() {
		t.Fatalf("expected same timing got %+v and %+v", dw.Timing(), withSelectors.Timing())
	}
}

func TestMaxTimes(t *testing.T) {
	dw := NewDataWord(0xFFFFFFFFFFFF)
	if dw.StartTime() != 4095*3125+31*98 {
		t.Fatalf("unexpected max start %d", dw.StartTime())
	}
	if dw.Duration() != 63*3125+31*98 {
		t.Fatalf("unexpected max duration %d", dw.Duration())
	}
}

func TestChunkTimingsOrder(t *testing.T) {
	chunks, err := Parse([]byte(sampleLine))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	timings := ChunkTimings(chunks[0])
	want := []uint64{10494142, 10493946, 10494730, 10495024, 10494142}
	if len(timings) != len(want) {
		t.Fatalf("expected %d timings got %d", len(want), len(timings))
	}
	for i, timing := range timings {
		if timing.Start != want[i] {
			t.Fatalf("word %d: expected start %d got %d", i, want[i], timing.Start)
		}
	}
}
