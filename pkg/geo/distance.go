package geo

import "math"

// Distance returns the Euclidean distance between two points in a 2D plane.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(math.Pow(x2-x1, 2) + math.Pow(y2-y1, 2))
}
