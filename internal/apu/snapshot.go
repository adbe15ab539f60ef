package apu

// State is the APU's full architectural state for save/restore. It mirrors
// each channel's fields into exported structs rather than embedding the
// channel types directly — PulseChannel and friends keep their fields
// unexported, and a snapshot format serialized with encoding/gob only ever
// sees a struct's exported fields.
type State struct {
	Pulse1, Pulse2 PulseChannelState
	Triangle       TriangleChannelState
	Noise          NoiseChannelState
	DMC            DMCChannelState

	FrameCounter   uint16
	FrameMode      bool
	FrameIRQEnable bool
	FrameIRQFlag   bool

	ChannelEnable [5]bool
	Cycles        uint64

	DMARequest     bool
	DMARequestAddr uint16
}

// PulseChannelState mirrors PulseChannel.
type PulseChannelState struct {
	DutyCycle       uint8
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	SweepEnable  bool
	SweepPeriod  uint8
	SweepNegate  bool
	SweepShift   uint8
	SweepReload  bool
	SweepCounter uint8

	Timer        uint16
	TimerCounter uint16

	LengthCounter uint8
	LengthHalt    bool

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	DutyIndex    uint8
	SequencerPos uint8
}

func savePulse(c PulseChannel) PulseChannelState {
	return PulseChannelState{
		DutyCycle: c.dutyCycle, EnvelopeLoop: c.envelopeLoop, EnvelopeDisable: c.envelopeDisable, Volume: c.volume,
		SweepEnable: c.sweepEnable, SweepPeriod: c.sweepPeriod, SweepNegate: c.sweepNegate, SweepShift: c.sweepShift,
		SweepReload: c.sweepReload, SweepCounter: c.sweepCounter,
		Timer: c.timer, TimerCounter: c.timerCounter,
		LengthCounter: c.lengthCounter, LengthHalt: c.lengthHalt,
		EnvelopeStart: c.envelopeStart, EnvelopeCounter: c.envelopeCounter, EnvelopeDivider: c.envelopeDivider,
		DutyIndex: c.dutyIndex, SequencerPos: c.sequencerPos,
	}
}

func loadPulse(s PulseChannelState) PulseChannel {
	return PulseChannel{
		dutyCycle: s.DutyCycle, envelopeLoop: s.EnvelopeLoop, envelopeDisable: s.EnvelopeDisable, volume: s.Volume,
		sweepEnable: s.SweepEnable, sweepPeriod: s.SweepPeriod, sweepNegate: s.SweepNegate, sweepShift: s.SweepShift,
		sweepReload: s.SweepReload, sweepCounter: s.SweepCounter,
		timer: s.Timer, timerCounter: s.TimerCounter,
		lengthCounter: s.LengthCounter, lengthHalt: s.LengthHalt,
		envelopeStart: s.EnvelopeStart, envelopeCounter: s.EnvelopeCounter, envelopeDivider: s.EnvelopeDivider,
		dutyIndex: s.DutyIndex, sequencerPos: s.SequencerPos,
	}
}

// TriangleChannelState mirrors TriangleChannel.
type TriangleChannelState struct {
	LengthCounterHalt bool
	LinearCounterLoad uint8

	Timer        uint16
	TimerCounter uint16

	LengthCounter uint8

	LinearCounter       uint8
	LinearCounterReload bool

	SequencerPos uint8
}

func saveTriangle(c TriangleChannel) TriangleChannelState {
	return TriangleChannelState{
		LengthCounterHalt: c.lengthCounterHalt, LinearCounterLoad: c.linearCounterLoad,
		Timer: c.timer, TimerCounter: c.timerCounter,
		LengthCounter:       c.lengthCounter,
		LinearCounter:       c.linearCounter,
		LinearCounterReload: c.linearCounterReload,
		SequencerPos:        c.sequencerPos,
	}
}

func loadTriangle(s TriangleChannelState) TriangleChannel {
	return TriangleChannel{
		lengthCounterHalt: s.LengthCounterHalt, linearCounterLoad: s.LinearCounterLoad,
		timer: s.Timer, timerCounter: s.TimerCounter,
		lengthCounter:       s.LengthCounter,
		linearCounter:       s.LinearCounter,
		linearCounterReload: s.LinearCounterReload,
		sequencerPos:        s.SequencerPos,
	}
}

// NoiseChannelState mirrors NoiseChannel.
type NoiseChannelState struct {
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	Mode         bool
	PeriodIndex  uint8
	TimerCounter uint16

	LengthCounter uint8
	LengthHalt    bool

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	ShiftRegister uint16
}

func saveNoise(c NoiseChannel) NoiseChannelState {
	return NoiseChannelState{
		EnvelopeLoop: c.envelopeLoop, EnvelopeDisable: c.envelopeDisable, Volume: c.volume,
		Mode: c.mode, PeriodIndex: c.periodIndex, TimerCounter: c.timerCounter,
		LengthCounter: c.lengthCounter, LengthHalt: c.lengthHalt,
		EnvelopeStart: c.envelopeStart, EnvelopeCounter: c.envelopeCounter, EnvelopeDivider: c.envelopeDivider,
		ShiftRegister: c.shiftRegister,
	}
}

func loadNoise(s NoiseChannelState) NoiseChannel {
	return NoiseChannel{
		envelopeLoop: s.EnvelopeLoop, envelopeDisable: s.EnvelopeDisable, volume: s.Volume,
		mode: s.Mode, periodIndex: s.PeriodIndex, timerCounter: s.TimerCounter,
		lengthCounter: s.LengthCounter, lengthHalt: s.LengthHalt,
		envelopeStart: s.EnvelopeStart, envelopeCounter: s.EnvelopeCounter, envelopeDivider: s.EnvelopeDivider,
		shiftRegister: s.ShiftRegister,
	}
}

// DMCChannelState mirrors DMCChannel.
type DMCChannelState struct {
	IRQEnable bool
	Loop      bool
	RateIndex uint8

	OutputLevel uint8

	SampleAddress uint16
	SampleLength  uint16

	TimerCounter      uint16
	SampleBuffer      uint8
	SampleBufferBits  uint8
	SampleBufferEmpty bool
	BytesRemaining    uint16
	CurrentAddress    uint16

	IRQFlag bool
}

func saveDMC(c DMCChannel) DMCChannelState {
	return DMCChannelState{
		IRQEnable: c.irqEnable, Loop: c.loop, RateIndex: c.rateIndex,
		OutputLevel:   c.outputLevel,
		SampleAddress: c.sampleAddress, SampleLength: c.sampleLength,
		TimerCounter: c.timerCounter, SampleBuffer: c.sampleBuffer, SampleBufferBits: c.sampleBufferBits,
		SampleBufferEmpty: c.sampleBufferEmpty, BytesRemaining: c.bytesRemaining, CurrentAddress: c.currentAddress,
		IRQFlag: c.irqFlag,
	}
}

func loadDMC(s DMCChannelState) DMCChannel {
	return DMCChannel{
		irqEnable: s.IRQEnable, loop: s.Loop, rateIndex: s.RateIndex,
		outputLevel:   s.OutputLevel,
		sampleAddress: s.SampleAddress, sampleLength: s.SampleLength,
		timerCounter: s.TimerCounter, sampleBuffer: s.SampleBuffer, sampleBufferBits: s.SampleBufferBits,
		sampleBufferEmpty: s.SampleBufferEmpty, bytesRemaining: s.BytesRemaining, currentAddress: s.CurrentAddress,
		irqFlag: s.IRQFlag,
	}
}

// SaveState captures every channel's register and sequencer state.
func (apu *APU) SaveState() State {
	return State{
		Pulse1:         savePulse(apu.pulse1),
		Pulse2:         savePulse(apu.pulse2),
		Triangle:       saveTriangle(apu.triangle),
		Noise:          saveNoise(apu.noise),
		DMC:            saveDMC(apu.dmc),
		FrameCounter:   apu.frameCounter,
		FrameMode:      apu.frameMode,
		FrameIRQEnable: apu.frameIRQEnable,
		FrameIRQFlag:   apu.frameIRQFlag,
		ChannelEnable:  apu.channelEnable,
		Cycles:         apu.cycles,
		DMARequest:     apu.dmaRequest,
		DMARequestAddr: apu.dmaRequestAddr,
	}
}

// LoadState restores a previously captured State.
func (apu *APU) LoadState(s State) {
	apu.pulse1 = loadPulse(s.Pulse1)
	apu.pulse2 = loadPulse(s.Pulse2)
	apu.triangle = loadTriangle(s.Triangle)
	apu.noise = loadNoise(s.Noise)
	apu.dmc = loadDMC(s.DMC)
	apu.frameCounter = s.FrameCounter
	apu.frameMode = s.FrameMode
	apu.frameIRQEnable = s.FrameIRQEnable
	apu.frameIRQFlag = s.FrameIRQFlag
	apu.channelEnable = s.ChannelEnable
	apu.cycles = s.Cycles
	apu.dmaRequest = s.DMARequest
	apu.dmaRequestAddr = s.DMARequestAddr
}
