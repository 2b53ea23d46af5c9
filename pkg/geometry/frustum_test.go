package geometry

import (
	"math"
	"testing"
)

func TestFrustumHeight(t *testing.T) {
	// 90 degrees: tan(45°) = 1, so height = 2 * distance
	height := FrustumHeight(5, 90)
	if math.Abs(height-10) > 1e-10 {
		t.Errorf("FrustumHeight failed: expected 10, got %v", height)
	}
}

func TestDistanceForHeight(t *testing.T) {
	angle := DegToRad(60)
	d := DistanceForHeight(4, angle)
	if math.Abs(FrustumHeight(d, 60)-4) > 1e-10 {
		t.Errorf("DistanceForHeight failed: round trip through FrustumHeight gave %v", FrustumHeight(d, 60))
	}
}
