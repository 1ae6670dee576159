package image

// Defect is a rectangle of known-bad pixels in absolute coordinates,
// inclusive on all four edges.
type Defect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Contains reports whether (x, y) lies inside the defect.
func (d Defect) Contains(x, y int) bool {
	return x >= d.X0 && x <= d.X1 && y >= d.Y0 && y <= d.Y1
}

// Overlaps reports whether the defect intersects the inclusive rectangle
// [x0, x1] x [y0, y1].
func (d Defect) Overlaps(x0, y0, x1, y1 int) bool {
	return d.X0 <= x1 && d.X1 >= x0 && d.Y0 <= y1 && d.Y1 >= y0
}

// DefectList is a set of bad regions on a detector, typically loaded from
// configuration.
type DefectList []Defect

// Contains reports whether any defect covers (x, y).
func (l DefectList) Contains(x, y int) bool {
	for _, d := range l {
		if d.Contains(x, y) {
			return true
		}
	}
	return false
}

// Overlaps reports whether any defect intersects [x0, x1] x [y0, y1].
func (l DefectList) Overlaps(x0, y0, x1, y1 int) bool {
	for _, d := range l {
		if d.Overlaps(x0, y0, x1, y1) {
			return true
		}
	}
	return false
}
