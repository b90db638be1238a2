package parameter

import "time"

// Audio Hardware Settings
const (
	// AudioSampleRate is the speaker rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume is the log2 gain applied to every cue; 0 is unity
	AudioMasterVolume = -1.0

	// MinSoundGap drops cues of the same kind fired closer than this
	MinSoundGap = 60 * time.Millisecond
)

// Encounter Cues
const (
	// PassChirpDuration is the rising sweep on pass-through
	PassChirpDuration = 90 * time.Millisecond
	PassChirpLowHz    = 520.0
	PassChirpHighHz   = 880.0

	// MergeThudDuration is the falling low thump when one crawler absorbs another
	MergeThudDuration = 220 * time.Millisecond
	MergeThudHz       = 110.0

	// SplitNoteDuration is the length of each note in the split arpeggio
	SplitNoteDuration = 60 * time.Millisecond

	// RejectBuzzDuration is the buzz when a split hits the population ceiling
	RejectBuzzDuration = 120 * time.Millisecond
	RejectBuzzHz       = 140.0
)

// SplitNotes is the rising arpeggio played on a successful split
var SplitNotes = []float64{660, 880, 1320}
