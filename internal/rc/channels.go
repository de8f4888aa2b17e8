package rc

import "github.com/dbehnke/crsfbridge/internal/protocol/crsf"

// Channels holds the 16-channel shared state in the native encoding. It is
// owned by the scheduler's loop: written by the commanding-link inbound path
// and read when synthesizing outbound RC frames, always from the same call
// stack, so no locking is needed.
type Channels struct {
	profile Profile
	values  [crsf.NumChannels]uint16
}

// NewChannels creates a channel store with every slot at center.
func NewChannels(profile Profile) *Channels {
	c := &Channels{profile: profile}
	c.CenterAll()
	return c
}

// CenterAll resets every channel to the native center value.
func (c *Channels) CenterAll() {
	for i := range c.values {
		c.values[i] = crsf.ChannelCenter
	}
}

// SetMicroseconds sets a channel (1-based) from a microsecond value using
// the deployment profile's mapping. Out-of-range channel numbers are
// ignored.
func (c *Channels) SetMicroseconds(channel int, us uint16) {
	if channel < 1 || channel > crsf.NumChannels {
		return
	}
	c.values[channel-1] = c.profile.MicrosecondsToNative(us)
}

// SetNative replaces all 16 channels with already-native values.
func (c *Channels) SetNative(values *[crsf.NumChannels]uint16) {
	c.values = *values
}

// Native returns one channel's native value (0-based index).
func (c *Channels) Native(index int) uint16 {
	if index < 0 || index >= crsf.NumChannels {
		return crsf.ChannelCenter
	}
	return c.values[index]
}

// All returns a copy of all 16 native values.
func (c *Channels) All() [crsf.NumChannels]uint16 {
	return c.values
}

// Profile returns the deployment profile in use.
func (c *Channels) Profile() Profile {
	return c.profile
}
