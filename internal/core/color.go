package core

// Color is a palette entry for a screen cell. Entries name what is being
// drawn; the platform decides how each one looks on the terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorText          // HUD and overlay text
	ColorDim           // secondary HUD text
	ColorWall
	ColorDoor
	ColorPellet
	ColorPowerPellet
	ColorPlayer
	ColorShadow  // Red ghost
	ColorSpeedy  // Pink ghost
	ColorBashful // Blue ghost
	ColorPokey   // Orange ghost
	ColorFrightened
	ColorFlash // frightened ghosts about to recover
	ColorEyes  // eaten ghosts heading home

	numColors
)

// Valid reports whether c is a palette entry.
func (c Color) Valid() bool {
	return c < numColors
}
