package geometry

import "math"

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// FrustumHeight returns the height of a perspective view frustum at the
// given distance from the eye: 2 * d * tan(fov/2).
func FrustumHeight(distance, fovDegrees float64) float64 {
	return 2.0 * distance * math.Tan(DegToRad(fovDegrees)/2.0)
}

// DistanceForHeight inverts FrustumHeight: the distance at which an object
// of the given height exactly fills the given angle.
func DistanceForHeight(height, angleRadians float64) float64 {
	return height / (2.0 * math.Tan(angleRadians/2.0))
}
