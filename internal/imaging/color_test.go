package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDescribeColor(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		wantHex string
		wantH   int
		wantS   int
		wantL   int
	}{
		{"red", 255, 0, 0, "#FF0000", 0, 100, 50},
		{"green", 0, 255, 0, "#00FF00", 120, 100, 50},
		{"blue", 0, 0, 255, "#0000FF", 240, 100, 50},
		{"white", 255, 255, 255, "#FFFFFF", 0, 0, 100},
		{"black", 0, 0, 0, "#000000", 0, 0, 0},
		{"gray", 128, 128, 128, "#808080", 0, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := colorful.MakeColor(color.RGBA{tt.r, tt.g, tt.b, 255})
			got := DescribeColor(c)

			if got.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.RGB != (RGBColor{R: tt.r, G: tt.g, B: tt.b}) {
				t.Errorf("RGB: got %+v", got.RGB)
			}
			// Allow some tolerance for rounding
			if abs(got.HSL.H-tt.wantH) > 1 {
				t.Errorf("H: got %d, want %d", got.HSL.H, tt.wantH)
			}
			if abs(got.HSL.S-tt.wantS) > 1 {
				t.Errorf("S: got %d, want %d", got.HSL.S, tt.wantS)
			}
			if abs(got.HSL.L-tt.wantL) > 1 {
				t.Errorf("L: got %d, want %d", got.HSL.L, tt.wantL)
			}
		})
	}
}

func TestDescribeColor_OutOfGamut(t *testing.T) {
	got := DescribeColor(colorful.Color{R: 1.5, G: -0.2, B: 0.5})

	if got.RGB.R != 255 || got.RGB.G != 0 {
		t.Errorf("out-of-gamut components should clamp, got %+v", got.RGB)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		wantR   uint8
		wantG   uint8
		wantB   uint8
		wantA   uint8
		wantErr bool
	}{
		{"#FF0000", 255, 0, 0, 255, false},
		{"#00FF00", 0, 255, 0, 255, false},
		{"#0000FF", 0, 0, 255, 255, false},
		{"#FFFFFF", 255, 255, 255, 255, false},
		{"#000000", 0, 0, 0, 255, false},
		{"FF0000", 255, 0, 0, 255, false},    // without #
		{"#FF000080", 255, 0, 0, 128, false}, // with alpha
		{"FF000080", 255, 0, 0, 128, false},  // without # with alpha
		{"", 0, 0, 0, 0, true},               // empty
		{"#FFF", 0, 0, 0, 0, true},           // invalid length
		{"#GGGGGG", 0, 0, 0, 0, true},        // invalid hex
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ParseHexColor(tt.hex)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if c.R != tt.wantR || c.G != tt.wantG || c.B != tt.wantB || c.A != tt.wantA {
				t.Errorf("got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					c.R, c.G, c.B, c.A, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestParseColorful(t *testing.T) {
	c, err := ParseColorful("#0000FF80")
	if err != nil {
		t.Fatalf("ParseColorful failed: %v", err)
	}
	if HexColor(c) != "#0000FF" {
		t.Errorf("alpha should be dropped, got %s", HexColor(c))
	}

	if _, err := ParseColorful("blue"); err == nil {
		t.Error("expected error for a color name")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
