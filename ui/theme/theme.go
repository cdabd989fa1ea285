package theme

// Light and dark palettes plus the ttk styles the annotator window uses.

import (
	tk "modernc.org/tk9.0"
)

// Palette holds resolved colors for one mode.
type Palette struct {
	AppBg   string
	Surface string
	Primary string
	Danger  string
	Accent  string
	Text    string
}

var (
	lightPalette = Palette{
		AppBg:   "#f7f9fb",
		Surface: "#ffffff",
		Primary: "#2563eb",
		Danger:  "#dc2626",
		Accent:  "#10b981",
		Text:    "#1e293b",
	}
	darkPalette = Palette{
		AppBg:   "#0f172a",
		Surface: "#1e293b",
		Primary: "#3b82f6",
		Danger:  "#ef4444",
		Accent:  "#10b981",
		Text:    "#f1f5f9",
	}
)

// Style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
)

var darkMode bool

// PaletteFor returns the palette for the given mode.
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// CurrentPalette returns colors for the active mode.
func CurrentPalette() Palette { return PaletteFor(darkMode) }

// SetDark switches mode and reapplies styles. Returns the new mode.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(PaletteFor(dark), dark)
	return darkMode
}

// ToggleDark flips dark mode and reapplies styles. Returns the new mode.
func ToggleDark() bool { return SetDark(!darkMode) }

// IsDark reports the current mode.
func IsDark() bool { return darkMode }

func applyStyles(p Palette, dark bool) {
	if dark {
		_ = tk.ActivateTheme("azure dark")
	} else {
		_ = tk.ActivateTheme("azure light")
	}
	tk.App.Configure(tk.Background(p.AppBg))

	tk.StyleConfigure(StylePrimaryButton,
		tk.Background(p.Primary),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleDangerButton,
		tk.Background(p.Danger),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleStateLabel,
		tk.Foreground("white"),
		tk.Background(p.Accent),
		tk.Padding("4p 2p"),
		tk.Borderwidth(1),
		tk.Relief("groove"),
	)
}
