package chart

// Color is an RGB color in the 0-255 range per channel.
type Color struct {
	R, G, B int
}

// Palette is the fixed color wheel for chart series. Labels take colors in
// display order, cycling when a view has more labels than the wheel.
var Palette = []Color{
	{59, 89, 152},   // #3b5998
	{139, 157, 195}, // #8b9dc3
	{0, 167, 157},   // #00a79d
	{243, 156, 18},  // #f39c12
	{231, 76, 60},   // #e74c3c
	{39, 174, 96},   // #27ae60
	{155, 89, 182},  // #9b59b6
	{52, 73, 94},    // #34495e
	{22, 160, 133},  // #16a085
	{211, 84, 0},    // #d35400
	{230, 126, 34},  // #e67e22
	{41, 128, 185},  // #2980b9
}

// ColorAt returns the palette color for position i, cycling past the end.
func ColorAt(i int) Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
