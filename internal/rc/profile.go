package rc

import (
	"fmt"

	"github.com/dbehnke/crsfbridge/internal/protocol/crsf"
)

// Profile selects the native channel-value convention used by a deployment.
// The two conventions share the 992 center but disagree on the endpoints of
// the microsecond mapping; a build must use exactly one.
type Profile int

const (
	// ProfileStandard maps 1000-2000us onto 191-1792 and clamps to the
	// 172-1811 operational range used by ELRS handsets.
	ProfileStandard Profile = iota
	// ProfileFull maps 1000-2000us onto the full 0-1984 range.
	ProfileFull
)

// ParseProfile parses a configuration value into a Profile.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "", "standard":
		return ProfileStandard, nil
	case "full":
		return ProfileFull, nil
	default:
		return ProfileStandard, fmt.Errorf("unknown channel profile %q", s)
	}
}

func (p Profile) String() string {
	if p == ProfileFull {
		return "full"
	}
	return "standard"
}

func (p Profile) endpoints() (usLo, usHi, nativeLo, nativeHi, clampLo, clampHi int32) {
	switch p {
	case ProfileFull:
		return 1000, 2000, crsf.ChannelFullMin, crsf.ChannelFullMax, crsf.ChannelFullMin, crsf.ChannelFullMax
	default:
		return 1000, 2000, crsf.ChannelValue, crsf.ChannelMax2k, crsf.ChannelMin, crsf.ChannelMax
	}
}

// MicrosecondsToNative converts a PWM-style microsecond value into the
// profile's native encoding, rounding to nearest and clamping to the
// profile's legal range.
func (p Profile) MicrosecondsToNative(us uint16) uint16 {
	usLo, usHi, nLo, nHi, clampLo, clampHi := p.endpoints()

	n := nLo + ((int32(us)-usLo)*(nHi-nLo)+(usHi-usLo)/2)/(usHi-usLo)
	if n < clampLo {
		n = clampLo
	} else if n > clampHi {
		n = clampHi
	}
	return uint16(n)
}

// NativeToMicroseconds is the affine inverse of MicrosecondsToNative
// (before clamping), rounded to nearest.
func (p Profile) NativeToMicroseconds(native uint16) uint16 {
	usLo, usHi, nLo, nHi, _, _ := p.endpoints()

	us := usLo + ((int32(native)-nLo)*(usHi-usLo)+(nHi-nLo)/2)/(nHi-nLo)
	return uint16(us)
}
