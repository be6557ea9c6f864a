package main

import (
	"fyne.io/fyne/v2"

	"github.com/oukeidos/mnmlrec/internal/logger"
)

type AppConfig struct {
	WindowWidth  float32
	WindowHeight float32
}

const (
	defaultWindowWidth  = 520
	defaultWindowHeight = 440
	minWindowWidth      = 360
	minWindowHeight     = 320
	maxWindowSide       = 4096
)

func loadConfig(p fyne.Preferences) AppConfig {
	return AppConfig{
		WindowWidth:  clampSide(p, "WindowWidth", defaultWindowWidth, minWindowWidth),
		WindowHeight: clampSide(p, "WindowHeight", defaultWindowHeight, minWindowHeight),
	}
}

func clampSide(p fyne.Preferences, key string, fallback, lo float64) float32 {
	v := p.FloatWithFallback(key, fallback)
	effective := v
	switch {
	case v < lo:
		effective = lo
	case v > maxWindowSide:
		effective = maxWindowSide
	}
	if effective != v {
		logger.Warn("Window size clamped", "key", key, "requested", v, "effective", effective)
		p.SetFloat(key, effective)
	}
	return float32(effective)
}

func saveConfig(p fyne.Preferences, cfg AppConfig) {
	p.SetFloat("WindowWidth", float64(cfg.WindowWidth))
	p.SetFloat("WindowHeight", float64(cfg.WindowHeight))
}
