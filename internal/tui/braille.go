package tui

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dotBits maps a dot's position inside its cell to the braille bit,
// indexed [column][row].
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
}

func (b *brailleBuf) pixel(mx, my int) bool {
	if mx < 0 || my < 0 || my/4 >= b.h || mx/2 >= b.w {
		return false
	}
	return b.m[my/4][mx/2]&dotBits[mx%2][my%4] != 0
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawCircleMicro strokes a circle of radius r dots with the midpoint
// algorithm. r <= 0 sets the center only.
func (b *brailleBuf) drawCircleMicro(cx, cy, r int) {
	if r <= 0 {
		b.setPixel(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		b.setPixel(cx+x, cy+y)
		b.setPixel(cx+y, cy+x)
		b.setPixel(cx-y, cy+x)
		b.setPixel(cx-x, cy+y)
		b.setPixel(cx-x, cy-y)
		b.setPixel(cx-y, cy-x)
		b.setPixel(cx+y, cy-x)
		b.setPixel(cx+x, cy-y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// fillCircleMicro sets every dot within r of the center.
func (b *brailleBuf) fillCircleMicro(cx, cy, r int) {
	if r <= 0 {
		b.setPixel(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				b.setPixel(cx+dx, cy+dy)
			}
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = brailleRune(b.m[y][x])
		}
		out[y] = string(row)
	}
	return out
}

func brailleRune(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
