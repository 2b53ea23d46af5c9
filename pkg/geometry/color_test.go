package geometry

import "testing"

func TestColorARGB(t *testing.T) {
	c := NewColor(0x12, 0x34, 0x56, 0xFF)
	packed := c.ARGB()

	if uint32(packed) != 0xFF123456 {
		t.Errorf("ARGB failed: expected 0xFF123456, got %#x", uint32(packed))
	}
	if packed >= 0 {
		t.Errorf("ARGB failed: opaque colours pack to a negative int32, got %d", packed)
	}
	if back := ColorFromARGB(packed); back != c {
		t.Errorf("ColorFromARGB failed: expected %v, got %v", c, back)
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := Red.WithAlpha(100)
	if c.A != 100 || c.R != 255 {
		t.Errorf("WithAlpha failed: got %v", c)
	}
	if Red.A != 255 {
		t.Errorf("WithAlpha modified the receiver")
	}
}
