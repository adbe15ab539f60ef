package dma

// OAMState is an OAMEngine's state for save/restore.
type OAMState struct {
	Phase      OAMPhase
	SourcePage uint8
	Index      int
	ReadByte   uint8
	StartedOdd bool
}

// SaveState captures an in-progress (or idle) OAM transfer.
func (e *OAMEngine) SaveState() OAMState {
	return OAMState{
		Phase:      e.phase,
		SourcePage: e.sourcePage,
		Index:      e.index,
		ReadByte:   e.readByte,
		StartedOdd: e.startedOdd,
	}
}

// LoadState restores a previously captured OAMState.
func (e *OAMEngine) LoadState(s OAMState) {
	e.phase = s.Phase
	e.sourcePage = s.SourcePage
	e.index = s.Index
	e.readByte = s.ReadByte
	e.startedOdd = s.StartedOdd
}

// DMCState is a DMCEngine's state for save/restore.
type DMCState struct {
	Phase   DMCPhase
	Address uint16
}

// SaveState captures an in-progress (or idle) DMC fetch.
func (e *DMCEngine) SaveState() DMCState {
	return DMCState{Phase: e.phase, Address: e.address}
}

// LoadState restores a previously captured DMCState.
func (e *DMCEngine) LoadState(s DMCState) {
	e.phase = s.Phase
	e.address = s.Address
}
