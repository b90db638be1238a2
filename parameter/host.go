package parameter

// Bootstrap Crawlers (three crawlers along the bottom edge at startup)
const (
	// BootstrapFirstPosition is the bottom-edge position of the first crawler
	BootstrapFirstPosition = 60.0

	// BootstrapSpacing separates consecutive bootstrap crawlers
	BootstrapSpacing = 120.0

	// BootstrapEyeColor is the default eye color
	BootstrapEyeColor = "#1E4FB7"
)

// BootstrapColors are the body colors of the startup crawlers, in spawn order
var BootstrapColors = []string{"#E52A2A", "#1E4FB7", "#BDC3C7"}

// SpawnPalette is drawn from for interactively spawned crawlers
var SpawnPalette = []string{"#E52A2A", "#1E4FB7", "#BDC3C7", "#F39C12", "#27AE60", "#8E44AD"}

// SeedStream is mixed into the PCG stream selector alongside the seed
const SeedStream = 0x5DEECE66D

// Terminal Host
const (
	// DefaultCellWidth is the virtual width of one terminal cell
	DefaultCellWidth = 8.0

	// DefaultCellHeight is the virtual height of one terminal cell
	DefaultCellHeight = 16.0

	// HUDRows reserved at the bottom of the terminal for the status line
	HUDRows = 1
)

// Window Host
const (
	DefaultWindowWidth  = 960
	DefaultWindowHeight = 640

	// WindowTPS is the ebiten update rate
	WindowTPS = 60

	// SpriteRadius is the body half-width drawn by the window host
	SpriteRadius = 14.0

	// SpriteHover is the gap kept between a non-grounded body and its wall
	SpriteHover = 0.6
)
