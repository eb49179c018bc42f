package matching

import "testing"

func TestParseOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"+03:00", 180, false},
		{"-05:30", -330, false},
		{"+0930", 570, false},
		{"+3", 180, false},
		{"UTC+02:00", 120, false},
		{"Z", 0, false},
		{"UTC", 0, false},
		{"", 0, true},
		{"03:00", 0, true},
		{"+25:00", 0, true},
		{"+03:75", 0, true},
		{"Europe/Berlin", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseOffset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseOffset(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseOffset(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTimezoneRange(t *testing.T) {
	t.Parallel()

	rng, err := ParseTimezoneRange("+02:00..+05:00")
	if err != nil {
		t.Fatalf("ParseTimezoneRange: %v", err)
	}
	if rng.Min != 120 || rng.Max != 300 {
		t.Fatalf("range = %+v, want {120 300}", rng)
	}

	in := []string{"+02:00", "+03:30", "+05:00"}
	for _, tz := range in {
		if !rng.InRange(tz) {
			t.Errorf("%s should be in range", tz)
		}
	}
	// numeric comparison, not lexical: "+10:00" sorts before "+2" as a string
	out := []string{"+10:00", "+01:59", "-03:00", "garbage"}
	for _, tz := range out {
		if rng.InRange(tz) {
			t.Errorf("%s should be out of range", tz)
		}
	}

	bad := []string{"+02:00", "+02:00..", "+05:00..+02:00", "a..b", "+01:00..+02:00..+03:00"}
	for _, s := range bad {
		if _, err := ParseTimezoneRange(s); err == nil {
			t.Errorf("ParseTimezoneRange(%q) expected error", s)
		}
	}
}
