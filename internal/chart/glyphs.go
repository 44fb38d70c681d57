package chart

// Grid optotypes are drawn on the classic 5x5 cell construction: stroke
// width is a fifth of the letter height, matching the Snellen convention
// used by the oriented shapes. Each pattern row is five cells, '#' marking
// an inked cell.
type glyphGrid [5]string

var glyphGrids = map[rune]glyphGrid{
	'E': {"#####", "#....", "#####", "#....", "#####"},
	'F': {"#####", "#....", "####.", "#....", "#...."},
	'P': {"####.", "#..#.", "####.", "#....", "#...."},
	'T': {"#####", "..#..", "..#..", "..#..", "..#.."},
	'O': {"#####", "#...#", "#...#", "#...#", "#####"},
	'Z': {"#####", "...#.", "..#..", ".#...", "#####"},
	'L': {"#....", "#....", "#....", "#....", "#####"},
	'D': {"####.", "#...#", "#...#", "#...#", "####."},
	'C': {"#####", "#....", "#....", "#....", "#####"},
	'0': {"#####", "#...#", "#...#", "#...#", "#####"},
	'1': {"..#..", ".##..", "..#..", "..#..", "#####"},
	'2': {"#####", "....#", "#####", "#....", "#####"},
	'3': {"#####", "....#", "#####", "....#", "#####"},
	'4': {"#...#", "#...#", "#####", "....#", "....#"},
	'5': {"#####", "#....", "#####", "....#", "#####"},
	'6': {"#####", "#....", "#####", "#...#", "#####"},
	'7': {"#####", "....#", "...#.", "..#..", "..#.."},
	'8': {"#####", "#...#", "#####", "#...#", "#####"},
	'9': {"#####", "#...#", "#####", "....#", "#####"},
}

// HasGlyphGrid reports whether r has a procedural 5x5 pattern. Runes
// without one (non-Latin profiles) are drawn through the surface's text
// facility instead.
func HasGlyphGrid(r rune) bool {
	_, ok := glyphGrids[r]
	return ok
}
