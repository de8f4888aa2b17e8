package crsf

// FrameHandler receives complete, CRC-validated frames from an Assembler.
// The frame's buffers are only valid for the duration of the call.
type FrameHandler interface {
	HandleFrame(frame Frame)
}

type assemblerState int

const (
	waitSync assemblerState = iota
	waitLength
	receiveData
)

// Assembler reassembles CRSF frames from a raw byte stream, one byte at a
// time. The same state machine serves both links; the per-link behaviour
// lives entirely in the FrameHandler given at construction.
type Assembler struct {
	handler FrameHandler

	state       assemblerState
	buf         [MaxFrameSize]byte
	bufIndex    int
	frameLength int

	framesReceived uint32
	crcErrors      uint32
}

// NewAssembler creates an assembler dispatching to handler.
func NewAssembler(handler FrameHandler) *Assembler {
	return &Assembler{handler: handler}
}

func isValidSyncByte(b byte) bool {
	return b == SyncByte || b == AddrRadio || b == AddrReceiver || b == AddrModule
}

// ProcessByte feeds one received byte through the state machine. Complete
// valid frames are dispatched synchronously; malformed input resets the
// machine and resumes scanning for a sync byte.
func (a *Assembler) ProcessByte(b byte) {
	switch a.state {
	case waitSync:
		if isValidSyncByte(b) {
			a.buf[0] = b
			a.bufIndex = 1
			a.state = waitLength
		}

	case waitLength:
		if b >= MinLengthByte && b <= MaxLengthByte {
			a.buf[1] = b
			a.bufIndex = 2
			a.frameLength = int(b) + 2
			a.state = receiveData
		} else {
			a.state = waitSync
		}

	case receiveData:
		a.buf[a.bufIndex] = b
		a.bufIndex++

		if a.bufIndex >= a.frameLength {
			a.completeFrame()
			a.state = waitSync
		}
	}
}

// ProcessBytes feeds a slice of received bytes through the state machine.
func (a *Assembler) ProcessBytes(data []byte) {
	for _, b := range data {
		a.ProcessByte(b)
	}
}

func (a *Assembler) completeFrame() {
	frame, err := Validate(a.buf[:a.frameLength])
	if err != nil {
		a.crcErrors++
		return
	}

	a.framesReceived++
	if a.handler != nil {
		a.handler.HandleFrame(frame)
	}
}

// FramesReceived returns the number of valid frames dispatched.
func (a *Assembler) FramesReceived() uint32 { return a.framesReceived }

// CRCErrors returns the number of frames rejected during validation.
func (a *Assembler) CRCErrors() uint32 { return a.crcErrors }

// ResetStats clears the frame and error counters.
func (a *Assembler) ResetStats() {
	a.framesReceived = 0
	a.crcErrors = 0
}
