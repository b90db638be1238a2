package audio

import "log"

// Name implements service.Service
func (sm *SoundManager) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (sm *SoundManager) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: bool mute; a muted manager never opens the speaker
// A missing audio device is not an error; cues become no-ops
func (sm *SoundManager) Init(args ...any) error {
	if len(args) > 0 {
		if mute, ok := args[0].(bool); ok && mute {
			sm.SetMuted(true)
			return nil
		}
	}
	if err := sm.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	return nil
}

// Start implements service.Service
func (sm *SoundManager) Start() error {
	return nil
}

// Stop implements service.Service
func (sm *SoundManager) Stop() error {
	sm.Cleanup()
	return nil
}
