package main

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		width      float64
		height     float64
		set        bool
		wantWidth  float32
		wantHeight float32
	}{
		{
			name:       "defaults",
			wantWidth:  defaultWindowWidth,
			wantHeight: defaultWindowHeight,
		},
		{
			name:       "stored size kept",
			width:      800,
			height:     600,
			set:        true,
			wantWidth:  800,
			wantHeight: 600,
		},
		{
			name:       "too small clamped",
			width:      10,
			height:     0,
			set:        true,
			wantWidth:  minWindowWidth,
			wantHeight: minWindowHeight,
		},
		{
			name:       "too large clamped",
			width:      100000,
			height:     5000,
			set:        true,
			wantWidth:  maxWindowSide,
			wantHeight: maxWindowSide,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			a := test.NewTempApp(t)
			p := a.Preferences()
			if tc.set {
				p.SetFloat("WindowWidth", tc.width)
				p.SetFloat("WindowHeight", tc.height)
			}
			cfg := loadConfig(p)
			if cfg.WindowWidth != tc.wantWidth || cfg.WindowHeight != tc.wantHeight {
				t.Fatalf("loadConfig() = %vx%v, want %vx%v", cfg.WindowWidth, cfg.WindowHeight, tc.wantWidth, tc.wantHeight)
			}
			if tc.set && p.Float("WindowWidth") != float64(tc.wantWidth) {
				t.Fatalf("clamped width not persisted: %v", p.Float("WindowWidth"))
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	a := test.NewTempApp(t)
	saveConfig(a.Preferences(), AppConfig{WindowWidth: 640, WindowHeight: 480})
	cfg := loadConfig(a.Preferences())
	if cfg.WindowWidth != 640 || cfg.WindowHeight != 480 {
		t.Fatalf("loadConfig() after save = %vx%v", cfg.WindowWidth, cfg.WindowHeight)
	}
}
