package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-01-01", want: New(2024, time.January, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "2024-02-29", want: New(2024, time.February, 29)},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestAddNormalizes(t *testing.T) {
	d := New(2024, time.December, 31).Add(1)
	if got := d.String(); got != "2025-01-01" {
		t.Errorf("Add(1) = %s, want 2025-01-01", got)
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-07-01", "2024-01-01", 182},
		{"2029-01-01", "2024-01-01", 1826},
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-02", -1},
	}
	for _, tc := range tests {
		a, b := MustParse(tc.a), MustParse(tc.b)
		if got := a.Sub(b); got != tc.want {
			t.Errorf("%s.Sub(%s) = %d, want %d", a, b, got, tc.want)
		}
	}
}

func TestOrdering(t *testing.T) {
	a := MustParse("2024-06-01")
	b := MustParse("2024-06-02")
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before is wrong for %s and %s", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After is wrong for %s and %s", a, b)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2024-03-15")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"2024-03-15"` {
		t.Errorf("MarshalJSON = %s, want \"2024-03-15\"", data)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
