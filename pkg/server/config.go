package server

import "time"

// Config configures the HTTP host.
type Config struct {
	// Addr is the listen address.
	Addr string

	// BasePath is the prefix every page is served under.
	BasePath string

	// Title is the document title of every page.
	Title string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// LiveNavigation enables the navigation socket and client script.
	LiveNavigation bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		BasePath:        "/",
		Title:           "IoT Manager",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		LiveNavigation:  true,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.BasePath == "" {
		c.BasePath = d.BasePath
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}
