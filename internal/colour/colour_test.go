package colour

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{name: "rgb lowercase", input: "#ff00ff", want: Color{R: 255, G: 0, B: 255, A: 255}},
		{name: "rgb uppercase", input: "#0C2D43", want: Color{R: 12, G: 45, B: 67, A: 255}},
		{name: "rgba", input: "#ff00ff00", want: Color{R: 255, G: 0, B: 255, A: 0}},
		{name: "rgba partial alpha", input: "#0c2d43c8", want: Color{R: 12, G: 45, B: 67, A: 200}},
		{name: "missing hash", input: "ff00ff", wantErr: true},
		{name: "short form", input: "#f0f", wantErr: true},
		{name: "bad digits", input: "#gg0000", wantErr: true},
		{name: "signed", input: "#+12345", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{name: "opaque", color: RGB(87, 212, 45), want: "#57d42d"},
		{name: "translucent", color: Color{R: 12, G: 45, B: 67, A: 200}, want: "#0c2d43c8"},
		{name: "black", color: RGB(0, 0, 0), want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}

			back, err := ParseHex(tt.want)
			if err != nil {
				t.Fatalf("ParseHex(%q) failed: %v", tt.want, err)
			}
			if back != tt.color {
				t.Errorf("ParseHex(Hex()) = %+v, want %+v", back, tt.color)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Color
	}{
		{name: "nrgba", input: color.NRGBA{R: 10, G: 20, B: 30, A: 128}, want: Color{R: 10, G: 20, B: 30, A: 128}},
		{name: "opaque rgba", input: color.RGBA{R: 200, G: 100, B: 50, A: 255}, want: RGB(200, 100, 50)},
		{name: "gray", input: color.Gray{Y: 77}, want: RGB(77, 77, 77)},
		{name: "self", input: Color{R: 1, G: 2, B: 3, A: 4}, want: Color{R: 1, G: 2, B: 3, A: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.input); got != tt.want {
				t.Errorf("FromColor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpaque(t *testing.T) {
	c := Color{R: 1, G: 2, B: 3, A: 4}
	if got := c.Opaque(); got != RGB(1, 2, 3) {
		t.Errorf("Opaque() = %+v, want %+v", got, RGB(1, 2, 3))
	}
	if c.A != 4 {
		t.Errorf("Opaque() mutated receiver: alpha = %d", c.A)
	}
	if got := c.WithAlpha(9); got.A != 9 || got.R != 1 {
		t.Errorf("WithAlpha(9) = %+v", got)
	}
}
