package parameter

// Terminal Sprites
const (
	// StretchLighten blends stretch phases toward white
	StretchLighten = 0.18

	// GroundedDarken blends the grounded phase toward black
	GroundedDarken = 0.3

	// RecoilDarken blends the recoil phase toward black
	RecoilDarken = 0.12

	// FallbackBodyColor is used when a crawler color does not parse
	FallbackBodyColor = "#BDC3C7"

	// HUDForeground is the status line text color
	HUDForeground = "#9AA5B1"

	// HUDPausedColor highlights the paused marker
	HUDPausedColor = "#F39C12"
)
