package core

// Color is the foreground color of a screen cell.
// The platform maps it to a terminal style; ColorDefault means unstyled.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// PaletteColors lists the distinguishable non-default colors, in a stable
// order, for games that need to color items by index.
var PaletteColors = []Color{
	ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta,
	ColorCyan, ColorOrange, ColorBrightRed, ColorBrightGreen, ColorBrightYellow,
	ColorBrightBlue, ColorBrightMagenta, ColorBrightCyan, ColorWhite, ColorGray,
}
