package track

import (
	"errors"
	"testing"
	"time"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <trkseg>
      <trkpt lat="46.0" lon="8.0"><ele>1200</ele><time>2023-06-10T08:00:00Z</time></trkpt>
      <trkpt lat="46.001" lon="8.001"><ele>1210</ele><time>2023-06-10T08:00:10Z</time></trkpt>
      <trkpt lat="46.002" lon="8.002"><ele>1225</ele><time>2023-06-10T08:00:25Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParse(t *testing.T) {
	samples, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0].Lat != 46.0 || samples[0].Lon != 8.0 {
		t.Errorf("first sample at (%v, %v), want (46, 8)", samples[0].Lat, samples[0].Lon)
	}
	if samples[2].Ele != 1225 {
		t.Errorf("third elevation = %v, want 1225", samples[2].Ele)
	}
}

func TestParseEmpty(t *testing.T) {
	empty := `<?xml version="1.0"?><gpx version="1.1" creator="t" xmlns="http://www.topografix.com/GPX/1/1"></gpx>`
	_, err := Parse([]byte(empty))
	if !errors.Is(err, ErrNoPoints) {
		t.Errorf("expected ErrNoPoints, got %v", err)
	}
}

func TestRelativize(t *testing.T) {
	samples, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	times := Relativize(samples)
	want := []float64{0, 10, 25}
	for i, w := range want {
		if times[i] != w {
			t.Errorf("times[%d] = %v, want %v", i, times[i], w)
		}
	}
}

func TestRelativizeClampsBackwardTime(t *testing.T) {
	base := time.Date(2023, 6, 10, 8, 0, 0, 0, time.UTC)
	samples := []Sample{
		{Time: base},
		{Time: base.Add(10 * time.Second)},
		{Time: base.Add(5 * time.Second)}, // clock glitch
		{Time: base.Add(20 * time.Second)},
	}

	times := Relativize(samples)
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			t.Fatalf("times not non-decreasing: %v", times)
		}
	}
	if times[2] != 10 {
		t.Errorf("glitched time = %v, want clamped to 10", times[2])
	}
}

func TestRelativizeSyntheticTimes(t *testing.T) {
	samples := []Sample{
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 2},
		{Lat: 3, Lon: 3},
	}

	times := Relativize(samples)
	want := []float64{0, 1, 2}
	for i, w := range want {
		if times[i] != w {
			t.Errorf("synthetic times[%d] = %v, want %v", i, times[i], w)
		}
	}
}
