package rc

import "testing"

func TestMicrosecondsToNative(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		us      uint16
		want    uint16
	}{
		{"standard center", ProfileStandard, 1500, 992},
		{"standard 1000us", ProfileStandard, 1000, 191},
		{"standard 2000us", ProfileStandard, 2000, 1792},
		{"standard clamps low", ProfileStandard, 900, 172},
		{"standard clamps high", ProfileStandard, 2100, 1811},
		{"full center", ProfileFull, 1500, 992},
		{"full 1000us", ProfileFull, 1000, 0},
		{"full 2000us", ProfileFull, 2000, 1984},
		{"full clamps low", ProfileFull, 500, 0},
		{"full clamps high", ProfileFull, 2500, 1984},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.MicrosecondsToNative(tt.us); got != tt.want {
				t.Errorf("%s.MicrosecondsToNative(%d) = %d, want %d",
					tt.profile, tt.us, got, tt.want)
			}
		})
	}
}

func TestNativeToMicrosecondsInverse(t *testing.T) {
	for _, profile := range []Profile{ProfileStandard, ProfileFull} {
		for us := uint16(1000); us <= 2000; us += 25 {
			native := profile.MicrosecondsToNative(us)
			back := profile.NativeToMicroseconds(native)
			// one native step is ~0.5-0.6us, allow a 1us rounding skew
			diff := int(back) - int(us)
			if diff < -1 || diff > 1 {
				t.Errorf("%s: us %d -> native %d -> us %d", profile, us, native, back)
			}
		}
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		input     string
		want      Profile
		expectErr bool
	}{
		{"standard", ProfileStandard, false},
		{"full", ProfileFull, false},
		{"", ProfileStandard, false},
		{"elrs", ProfileStandard, true},
	}

	for _, tt := range tests {
		got, err := ParseProfile(tt.input)
		if tt.expectErr {
			if err == nil {
				t.Errorf("ParseProfile(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProfile(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseProfile(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
