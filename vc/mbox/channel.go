package mbox

// Channel identifies one of the mailbox's multiplexed consumers. Only the
// low 4 bits of a mailbox word address the channel, the upper 28 carry the
// payload.
type Channel uint32

const (
	ChannelPowerMgmt   Channel = iota // legacy power management
	ChannelFramebuffer                // legacy framebuffer setup
	ChannelVirtualUART
	ChannelVCHIQ
	ChannelLEDs
	ChannelButtons
	ChannelTouchscreen
	_
	ChannelProperties   // property tags ARM -> VC
	ChannelPropertiesVC // property tags VC -> ARM
)

const channelMask = 0xf

// Status holds the flags of a mailbox status register.
type Status uint32

const (
	StatusFull  Status = 1 << 31 // no space for another write
	StatusEmpty Status = 1 << 30 // nothing left to read
)

// RegisterFile is the mailbox pair as seen by the ARM cores: mailbox 0
// receives from the VideoCore, mailbox 1 sends to it. Data words are uintptr
// wide so that a simulated implementation can resolve message buffers on any
// platform. Translating addresses into the VideoCore's bus view is the
// implementation's job.
type RegisterFile interface {
	// ReadData pops the next word from mailbox 0.
	ReadData() uintptr
	// ReadStatus returns the status of mailbox 0.
	ReadStatus() Status
	// WriteData pushes a word into mailbox 1.
	WriteData(v uintptr)
	// WriteStatus returns the status of mailbox 1.
	WriteStatus() Status
}
