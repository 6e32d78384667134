// Package config loads the console configuration.
//
// The configuration is stored in config.toml in the working directory. An
// optional overlay, config.<SERVICE_ENV>.toml, is merged on top, and a few
// environment variables override individual settings.
//
// # Configuration File Structure
//
//	shutdown_timeout = "30s"
//
//	[server]
//	addr = ":8080"
//	base_path = "/"
//	read_timeout = "10s"
//	write_timeout = "10s"
//	live_navigation = true
//
//	[routes]
//	variant = "gallery"
//
//	[views]
//	api_base = "http://localhost:5001"
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[metrics]
//	enabled = true
//	namespace = "console"
//
//	[tracing]
//	enabled = true
//	tracer_name = "console"
//
// A missing config.toml is not an error; every setting has a default.
package config
