package prop

import "github.com/bitkis/ruspiro-mailbox/vc/mbox"

// Property tags understood by the firmware. Bit 15 marks a set request,
// bit 14 a test request.
const (
	TagGetFirmwareRevision mbox.Tag = 0x0000_0001

	// board
	TagGetBoardModel    mbox.Tag = 0x0001_0001
	TagGetBoardRevision mbox.Tag = 0x0001_0002
	TagGetMACAddress    mbox.Tag = 0x0001_0003
	TagGetBoardSerial   mbox.Tag = 0x0001_0004
	TagGetARMMemory     mbox.Tag = 0x0001_0005
	TagGetVCMemory      mbox.Tag = 0x0001_0006

	// boot config
	TagGetCommandLine mbox.Tag = 0x0005_0001

	// power domains
	TagGetPowerState  mbox.Tag = 0x0002_0001
	TagGetPowerTiming mbox.Tag = 0x0002_0002
	TagSetPowerState  mbox.Tag = 0x0002_8001

	// clocks
	TagGetClockState        mbox.Tag = 0x0003_0001
	TagSetClockState        mbox.Tag = 0x0003_8001
	TagGetClockRate         mbox.Tag = 0x0003_0002
	TagSetClockRate         mbox.Tag = 0x0003_8002
	TagGetMaxClockRate      mbox.Tag = 0x0003_0004
	TagGetMinClockRate      mbox.Tag = 0x0003_0007
	TagGetClockRateMeasured mbox.Tag = 0x0003_0047
	TagGetTurbo             mbox.Tag = 0x0003_0009
	TagSetTurbo             mbox.Tag = 0x0003_8009

	// voltage and temperature sensors
	TagGetVoltage        mbox.Tag = 0x0003_0003
	TagSetVoltage        mbox.Tag = 0x0003_8003
	TagGetMaxVoltage     mbox.Tag = 0x0003_0005
	TagGetMinVoltage     mbox.Tag = 0x0003_0008
	TagGetTemperature    mbox.Tag = 0x0003_0006
	TagGetMaxTemperature mbox.Tag = 0x0003_000a

	// VideoCore memory
	TagMemAlloc   mbox.Tag = 0x0003_000c
	TagMemLock    mbox.Tag = 0x0003_000d
	TagMemUnlock  mbox.Tag = 0x0003_000e
	TagMemRelease mbox.Tag = 0x0003_000f

	// framebuffer
	TagFBAllocate       mbox.Tag = 0x0004_0001
	TagFBRelease        mbox.Tag = 0x0004_8001
	TagFBBlank          mbox.Tag = 0x0004_0002
	TagGetPhysicalSize  mbox.Tag = 0x0004_0003
	TagTestPhysicalSize mbox.Tag = 0x0004_4003
	TagSetPhysicalSize  mbox.Tag = 0x0004_8003
	TagGetVirtualSize   mbox.Tag = 0x0004_0004
	TagTestVirtualSize  mbox.Tag = 0x0004_4004
	TagSetVirtualSize   mbox.Tag = 0x0004_8004
	TagGetDepth         mbox.Tag = 0x0004_0005
	TagTestDepth        mbox.Tag = 0x0004_4005
	TagSetDepth         mbox.Tag = 0x0004_8005
	TagGetPixelOrder    mbox.Tag = 0x0004_0006
	TagSetPixelOrder    mbox.Tag = 0x0004_8006
	TagGetAlphaMode     mbox.Tag = 0x0004_0007
	TagSetAlphaMode     mbox.Tag = 0x0004_8007
	TagGetPitch         mbox.Tag = 0x0004_0008
	TagGetVirtualOffset mbox.Tag = 0x0004_0009
	TagSetVirtualOffset mbox.Tag = 0x0004_8009
	TagGetOverscan      mbox.Tag = 0x0004_000a
	TagSetOverscan      mbox.Tag = 0x0004_800a
	TagGetPalette       mbox.Tag = 0x0004_000b
	TagSetPalette       mbox.Tag = 0x0004_800b
)

// ClockID selects a clock for the clock tags.
type ClockID uint32

const (
	ClockEMMC ClockID = iota + 1
	ClockUART
	ClockARM
	ClockCore
	ClockV3D
	ClockH264
	ClockISP
	ClockSDRAM
	ClockPixel
	ClockPWM
)

// PowerDomain selects a device for the power tags.
type PowerDomain uint32

const (
	PowerSDCard PowerDomain = iota
	PowerUART0
	PowerUART1
	PowerUSBHCD
	PowerI2C0
	PowerI2C1
	PowerI2C2
	PowerSPI
	PowerCCP2TX
)

// VoltageID selects a rail for the voltage tags.
type VoltageID uint32

const (
	VoltageCore VoltageID = iota + 1
	VoltageSDRAMCore
	VoltageSDRAMPhy
	VoltageSDRAMIO
)

// sizes holds the request and response payload bytes of the known tags.
var sizes = map[mbox.Tag][2]int{
	TagGetFirmwareRevision: {0, 4},

	TagGetBoardModel:    {0, 4},
	TagGetBoardRevision: {0, 4},
	TagGetMACAddress:    {0, 6},
	TagGetBoardSerial:   {0, 8},
	TagGetARMMemory:     {0, 8},
	TagGetVCMemory:      {0, 8},

	TagGetCommandLine: {0, 1024},

	TagGetPowerState:  {4, 8},
	TagGetPowerTiming: {4, 8},
	TagSetPowerState:  {8, 8},

	TagGetClockState:        {4, 8},
	TagSetClockState:        {8, 8},
	TagGetClockRate:         {4, 8},
	TagSetClockRate:         {12, 8},
	TagGetMaxClockRate:      {4, 8},
	TagGetMinClockRate:      {4, 8},
	TagGetClockRateMeasured: {4, 8},
	TagGetTurbo:             {4, 8},
	TagSetTurbo:             {8, 8},

	TagGetVoltage:        {4, 8},
	TagSetVoltage:        {8, 8},
	TagGetMaxVoltage:     {4, 8},
	TagGetMinVoltage:     {4, 8},
	TagGetTemperature:    {4, 8},
	TagGetMaxTemperature: {4, 8},

	TagMemAlloc:   {12, 4},
	TagMemLock:    {4, 4},
	TagMemUnlock:  {4, 4},
	TagMemRelease: {4, 4},

	TagFBAllocate:       {4, 8},
	TagFBRelease:        {0, 0},
	TagFBBlank:          {4, 4},
	TagGetPhysicalSize:  {0, 8},
	TagTestPhysicalSize: {8, 8},
	TagSetPhysicalSize:  {8, 8},
	TagGetVirtualSize:   {0, 8},
	TagTestVirtualSize:  {8, 8},
	TagSetVirtualSize:   {8, 8},
	TagGetDepth:         {0, 4},
	TagTestDepth:        {4, 4},
	TagSetDepth:         {4, 4},
	TagGetPixelOrder:    {0, 4},
	TagSetPixelOrder:    {4, 4},
	TagGetAlphaMode:     {0, 4},
	TagSetAlphaMode:     {4, 4},
	TagGetPitch:         {0, 4},
	TagGetVirtualOffset: {0, 8},
	TagSetVirtualOffset: {8, 8},
	TagGetOverscan:      {0, 16},
	TagSetOverscan:      {16, 16},
}

// Size returns the request and response payload sizes of a known tag in
// bytes. Tags missing from the catalog can still be submitted via
// mbox.Request with an explicit response capacity.
func Size(tag mbox.Tag) (req, resp int, ok bool) {
	s, ok := sizes[tag]
	return s[0], s[1], ok
}
