package templates

import (
	"time"

	"github.com/oksasatya/go-link-saver/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithName(name string) Option { return func(d *EmailData) { d.Name = name } }

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, email string, opts ...Option) EmailData {
	d := EmailData{
		Email: email,
		Type:  typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,

		SupportURL: cfg.SupportURL,
		AppURL:     cfg.AppURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, email string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, Welcome, email, opts...)
	return ToMap(d)
}
