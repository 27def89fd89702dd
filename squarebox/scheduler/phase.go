package scheduler

// Phase is the position of a tick within the 16-tick scheduling cycle.
type Phase uint8

// PhaseCount is the length of the cycle. Each voice is re-tuned and one ADC
// conversion is kept once per cycle.
const PhaseCount = 16

// Action is the staggered work attached to a phase.
type Action uint8

const (
	Idle Action = iota
	Sample
	RetuneVoice0
	RetuneVoice1
	RetuneVoice2
)

var actionNames = map[Action]string{
	Idle:         "idle",
	Sample:       "sample",
	RetuneVoice0: "retune voice 0",
	RetuneVoice1: "retune voice 1",
	RetuneVoice2: "retune voice 2",
}

func (a Action) String() string {
	return actionNames[a]
}

// Voice returns the voice a retune action targets.
func (a Action) Voice() (int, bool) {
	switch a {
	case RetuneVoice0:
		return 0, true
	case RetuneVoice1:
		return 1, true
	case RetuneVoice2:
		return 2, true
	}
	return 0, false
}

// phaseActions is the scheduling cycle:
//
//	Phase  Action
//	0      keep the in-flight ADC conversion, advance channel
//	4      retune voice 0 from slots 0,1 + master pair
//	8      retune voice 1 from slots 2,3 + master pair
//	12     retune voice 2 from slots 4,5 + master pair
//	other  -
var phaseActions = [PhaseCount]Action{
	0:  Sample,
	4:  RetuneVoice0,
	8:  RetuneVoice1,
	12: RetuneVoice2,
}

// Next is the phase of the following tick. The cycle wraps from 15 to 0.
func (p Phase) Next() Phase {
	return (p + 1) & (PhaseCount - 1)
}

func (p Phase) Action() Action {
	return phaseActions[p&(PhaseCount-1)]
}

// PhaseOf maps a free-running tick count onto the cycle.
func PhaseOf(ticks uint64) Phase {
	return Phase(ticks & (PhaseCount - 1))
}
