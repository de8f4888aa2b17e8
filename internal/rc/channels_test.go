package rc

import (
	"testing"

	"github.com/dbehnke/crsfbridge/internal/protocol/crsf"
)

func TestNewChannelsCentered(t *testing.T) {
	c := NewChannels(ProfileStandard)
	for i := 0; i < crsf.NumChannels; i++ {
		if got := c.Native(i); got != crsf.ChannelCenter {
			t.Errorf("channel %d = %d, want %d", i, got, crsf.ChannelCenter)
		}
	}
}

func TestSetMicroseconds(t *testing.T) {
	c := NewChannels(ProfileStandard)

	c.SetMicroseconds(1, 2000)
	if got := c.Native(0); got != 1792 {
		t.Errorf("channel 1 = %d, want 1792", got)
	}

	c.SetMicroseconds(16, 1000)
	if got := c.Native(15); got != 191 {
		t.Errorf("channel 16 = %d, want 191", got)
	}

	// out-of-range channel numbers are ignored
	before := c.All()
	c.SetMicroseconds(0, 2000)
	c.SetMicroseconds(17, 2000)
	if c.All() != before {
		t.Error("out-of-range channel write modified the store")
	}
}

func TestSetNativeAndAll(t *testing.T) {
	c := NewChannels(ProfileFull)

	var values [crsf.NumChannels]uint16
	for i := range values {
		values[i] = uint16(i * 100)
	}
	c.SetNative(&values)

	if c.All() != values {
		t.Errorf("All() = %v, want %v", c.All(), values)
	}

	c.CenterAll()
	for i := 0; i < crsf.NumChannels; i++ {
		if c.Native(i) != crsf.ChannelCenter {
			t.Fatalf("channel %d not centered after CenterAll", i)
		}
	}
}

func TestNativeOutOfRangeIndex(t *testing.T) {
	c := NewChannels(ProfileStandard)
	if got := c.Native(-1); got != crsf.ChannelCenter {
		t.Errorf("Native(-1) = %d, want center", got)
	}
	if got := c.Native(16); got != crsf.ChannelCenter {
		t.Errorf("Native(16) = %d, want center", got)
	}
}
