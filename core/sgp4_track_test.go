package core

import (
	"math"
	"strings"
	"testing"
	"time"
)

const (
	issTLE1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issTLE2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func TestPropagateTLE_ISSGroundTrack(t *testing.T) {
	start := time.Date(2021, time.October, 2, 14, 0, 0, 0, time.UTC)
	track, err := PropagateTLE(issTLE1, issTLE2, start, 3)
	if err != nil {
		t.Fatalf("PropagateTLE: %v", err)
	}
	if len(track) != 100 {
		t.Fatalf("3 hour span produced %d samples, want 100", len(track))
	}

	for i, p := range track {
		if math.Abs(p.LatitudeDeg) > 55 {
			t.Fatalf("sample %d latitude %v exceeds the ISS inclination band", i, p.LatitudeDeg)
		}
		if p.LongitudeDeg < -180 || p.LongitudeDeg > 180 {
			t.Fatalf("sample %d longitude %v out of range", i, p.LongitudeDeg)
		}
		if math.IsNaN(p.LatitudeDeg) || math.IsNaN(p.LongitudeDeg) {
			t.Fatalf("sample %d contains NaN: %+v", i, p)
		}
	}

	if !track[0].Time.Equal(start) {
		t.Fatalf("first sample at %v, want %v", track[0].Time, start)
	}
	if !track[len(track)-1].Time.After(track[0].Time) {
		t.Fatalf("track timestamps do not advance")
	}
}

func TestPropagateTLE_CrossesBothHemispheres(t *testing.T) {
	start := time.Date(2021, time.October, 2, 14, 0, 0, 0, time.UTC)
	track, err := PropagateTLE(issTLE1, issTLE2, start, 3)
	if err != nil {
		t.Fatalf("PropagateTLE: %v", err)
	}

	// Three hours covers roughly two full orbits, so the track must reach
	// well into both hemispheres.
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	for _, p := range track {
		minLat = math.Min(minLat, p.LatitudeDeg)
		maxLat = math.Max(maxLat, p.LatitudeDeg)
	}
	if maxLat < 40 || minLat > -40 {
		t.Fatalf("track latitude range [%v, %v] too narrow for a 51.6 degree orbit", minLat, maxLat)
	}
}

func TestValidateTLELines(t *testing.T) {
	cases := []struct {
		name    string
		line1   string
		line2   string
		wantErr string
	}{
		{"valid", issTLE1, issTLE2, ""},
		{"line1 too short", "1 25544U", issTLE2, "line1 length"},
		{"line2 too short", issTLE1, "2 25544", "line2 length"},
		{"line1 wrong prefix", strings.Replace(issTLE1, "1 ", "3 ", 1), issTLE2, "must start with '1'"},
		{"line2 wrong prefix", issTLE1, strings.Replace(issTLE2, "2 ", "9 ", 1), "must start with '2'"},
		{"empty", "", "", "line1 length"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTLELines(tc.line1, tc.line2)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestPropagateTLE_RejectsMalformedLines(t *testing.T) {
	if _, err := PropagateTLE("garbage", "garbage", time.Now(), 1); err == nil {
		t.Fatalf("expected an error for malformed TLE lines")
	}
}
