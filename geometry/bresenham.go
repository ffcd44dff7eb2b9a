package geometry

// BresenhamLine rasterizes the segment from (x0,y0) to (x1,y1) using the
// integer Bresenham algorithm, matching the pixel sequence the original
// engine's Rust `bresenham` crate produces (inclusive of both endpoints).
func BresenhamLine(x0, y0, x1, y1 int) []GridPoint {
	points := make([]GridPoint, 0)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		points = append(points, GridPoint{X: x, Y: y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
