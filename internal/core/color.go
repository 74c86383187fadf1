package core

import "fmt"

// RGB is a 24-bit display color.
type RGB struct {
	R, G, B uint8
}

// Black is the zero color.
var Black = RGB{}

// White is used for overlay text.
var White = RGB{R: 255, G: 255, B: 255}

// Hex returns the color as "#rrggbb", the form lipgloss accepts for true color.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
