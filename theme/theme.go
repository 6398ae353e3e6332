package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Keyboard strip
	WhiteKey rune // full-height key
	BlackKey rune // raised key, drawn half height

	// Progress bar
	StepDone    rune // completed step
	StepPending rune // step still to play
	StepCurrent rune // step waiting on the player

	// Legend / status
	Dot rune // legend swatch and held-note bullet
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			WhiteKey: '█',
			BlackKey: '▀',

			StepDone:    '■',
			StepPending: '□',
			StepCurrent: '▶',

			Dot: '●',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG       = 0.0  // deep purple
	RoleSurface  = 0.1  // dark purple
	RoleBlackKey = 0.15 // dark purple-magenta
	RoleMuted    = 0.25 // purple-magenta
	RoleFG       = 0.4  // pink-purple (readable)
	RoleAccent   = 0.5  // vivid magenta, expected notes
	RoleHeld     = 0.65 // rose pink, keys currently down
	RoleWarning  = 0.8  // orange
	RoleWhiteKey = 0.9  // pale orange-yellow
	RoleSuccess  = 1.0  // bright yellow, completion
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Held() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleHeld))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// RGB returns raw RGB for any normalized value (for widget cells)
func (t *Theme) RGB(norm float64) RGB {
	return t.Palette.Lookup(norm)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
