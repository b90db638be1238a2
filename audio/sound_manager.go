// Package audio plays short procedural cues for crawler encounters.
// Every operation is a no-op until Initialize succeeds, so hosts without an
// audio device run unchanged.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/edge-crawler/encounter"
	"github.com/lixenwraith/edge-crawler/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Cue identifies one encounter sound
type Cue uint8

const (
	CuePass Cue = iota
	CueMerge
	CueSplit
	CueRejected
	cueCount
)

// CueFor maps a resolved encounter to its sound
func CueFor(res encounter.Result) Cue {
	switch {
	case res.Outcome == encounter.Merge:
		return CueMerge
	case res.Outcome == encounter.Split && res.Rejected:
		return CueRejected
	case res.Outcome == encounter.Split:
		return CueSplit
	default:
		return CuePass
	}
}

// SoundManager mixes encounter cues onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	now         func() time.Time
	lastPlayed  [cueCount]time.Time
	played      [cueCount]int
}

// NewSoundManager creates an uninitialized sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker; calling it again is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer; the manager may be initialized again
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles output without releasing the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Muted reports the mute toggle
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// OnEncounter plays the cue for res; suitable as an encounter observer
func (sm *SoundManager) OnEncounter(res encounter.Result) {
	sm.Play(CueFor(res))
}

func (sm *SoundManager) PlayPass()     { sm.Play(CuePass) }
func (sm *SoundManager) PlayMerge()    { sm.Play(CueMerge) }
func (sm *SoundManager) PlaySplit()    { sm.Play(CueSplit) }
func (sm *SoundManager) PlayRejected() { sm.Play(CueRejected) }

// Play queues cue unless audio is unavailable, muted, or the same cue fired within MinSoundGap
func (sm *SoundManager) Play(cue Cue) {
	if cue >= cueCount {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	now := sm.now()
	if now.Sub(sm.lastPlayed[cue]) < parameter.MinSoundGap {
		return
	}

	s := build(cue)
	if s == nil {
		return
	}
	sm.lastPlayed[cue] = now
	sm.played[cue]++

	speaker.Lock()
	sm.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: parameter.AudioMasterVolume})
	speaker.Unlock()
}

// Played returns how many times cue reached the mixer
func (sm *SoundManager) Played(cue Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if cue >= cueCount {
		return 0
	}
	return sm.played[cue]
}

// build creates a fresh streamer for cue
func build(cue Cue) beep.Streamer {
	switch cue {
	case CuePass:
		return NewChirpGenerator(sampleRate, parameter.PassChirpLowHz, parameter.PassChirpHighHz, parameter.PassChirpDuration)
	case CueMerge:
		return NewThudGenerator(sampleRate, parameter.MergeThudHz, parameter.MergeThudDuration)
	case CueSplit:
		notes := make([]beep.Streamer, 0, len(parameter.SplitNotes))
		for _, hz := range parameter.SplitNotes {
			tone, err := generators.SineTone(sampleRate, hz)
			if err != nil {
				continue
			}
			notes = append(notes, beep.Take(sampleRate.N(parameter.SplitNoteDuration), tone))
		}
		if len(notes) == 0 {
			return nil
		}
		return &effects.Volume{Streamer: beep.Seq(notes...), Base: 2, Volume: -2}
	case CueRejected:
		return beep.Take(sampleRate.N(parameter.RejectBuzzDuration), NewBuzzGenerator(sampleRate, parameter.RejectBuzzHz))
	}
	return nil
}
