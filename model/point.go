package model

import "fmt"

// Unassigned is the cluster id of a point that has no cluster yet.
const Unassigned = -1

// Point is a 2-D real-valued coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// ClonePoints returns a copy of ps. A nil slice stays nil.
func ClonePoints(ps []Point) []Point {
	if ps == nil {
		return nil
	}
	out := make([]Point, len(ps))
	copy(out, ps)
	return out
}
