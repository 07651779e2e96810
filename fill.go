package easel

// FloodFill replaces the 4-connected region of pixels matching the
// seed pixel's color with the fill color. tolerance is the allowed
// per-channel difference from the seed color; zero requires exact
// matches. It reports whether any pixel changed: an out-of-bounds seed
// or a seed already carrying the fill color is a no-op, so repeating a
// fill does nothing.
//
// The traversal is iterative over an explicit work stack and runs to
// completion before returning.
func FloodFill(p *Pixmap, seedX, seedY int, fill RGBA, tolerance uint8) bool {
	if p == nil || seedX < 0 || seedX >= p.Width() || seedY < 0 || seedY >= p.Height() {
		return false
	}
	fr, fg, fb, fa := fill.Bytes()
	sr, sg, sb, sa := p.RGBA8At(seedX, seedY)
	if sr == fr && sg == fg && sb == fb && sa == fa {
		return false
	}

	w, h := p.Width(), p.Height()
	matches := func(x, y int) bool {
		r, g, b, a := p.RGBA8At(x, y)
		return absDiff(r, sr) <= tolerance &&
			absDiff(g, sg) <= tolerance &&
			absDiff(b, sb) <= tolerance &&
			absDiff(a, sa) <= tolerance
	}

	// Filled pixels can re-match the seed when the fill color itself is
	// within tolerance, so track visits separately.
	visited := make([]bool, w*h)
	stack := make([][2]int, 0, 64)
	stack = append(stack, [2]int{seedX, seedY})
	visited[seedY*w+seedX] = true

	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := pt[0], pt[1]
		p.SetRGBA8(x, y, fr, fg, fb, fa)

		for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
			nx, ny := n[0], n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if visited[ny*w+nx] || !matches(nx, ny) {
				continue
			}
			visited[ny*w+nx] = true
			stack = append(stack, [2]int{nx, ny})
		}
	}
	return true
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
