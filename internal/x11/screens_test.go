package x11

import (
	"testing"

	"github.com/1broseidon/gwk/internal/native"
)

func TestClipWorkArea(t *testing.T) {
	left := native.Geometry{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := native.Geometry{X: 1920, Y: 0, Width: 1280, Height: 1024}

	tests := []struct {
		name     string
		bounds   native.Geometry
		workArea native.Geometry
		want     native.Geometry
	}{
		{
			name:     "top panel",
			bounds:   left,
			workArea: native.Geometry{X: 0, Y: 32, Width: 3200, Height: 1048},
			want:     native.Geometry{X: 0, Y: 32, Width: 1920, Height: 1048},
		},
		{
			name:     "second screen clipped to its own area",
			bounds:   right,
			workArea: native.Geometry{X: 0, Y: 32, Width: 3200, Height: 1048},
			want:     native.Geometry{X: 1920, Y: 32, Width: 1280, Height: 992},
		},
		{
			name:     "no overlap keeps bounds",
			bounds:   right,
			workArea: native.Geometry{X: 0, Y: 0, Width: 1920, Height: 1080},
			want:     right,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clipWorkArea(tt.bounds, tt.workArea); got != tt.want {
				t.Fatalf("clipWorkArea = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMarkPrimary(t *testing.T) {
	screens := []native.Screen{{Name: "DP-1"}, {Name: "HDMI-1"}}
	markPrimary(screens)
	if !screens[0].Primary || screens[1].Primary {
		t.Fatalf("first screen should become primary: %+v", screens)
	}

	screens = []native.Screen{{Name: "DP-1"}, {Name: "HDMI-1", Primary: true}}
	markPrimary(screens)
	if screens[0].Primary {
		t.Fatalf("server-chosen primary should be kept: %+v", screens)
	}
}
