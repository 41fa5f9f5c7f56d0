package handlers

import "github.com/alainchristian/kwa-mugisha/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

// AnalyticsFromConfig copies the analytics settings templates need.
func AnalyticsFromConfig(cfg config.AnalyticsConfig) Analytics {
	return Analytics{
		GA4MeasurementID: cfg.GA4MeasurementID,
		Debug:            cfg.Debug,
	}
}

// Enabled reports whether the tag snippet should be emitted.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" }
