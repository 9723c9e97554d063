package config

import "flag"

type flagValues struct {
	configFile *string
	dataFile   *string
	addr       *string
	logLevel   *string
	logFormat  *string
	theme      *string
	rateLimit  *int
	otel       *bool
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	return &flagValues{
		configFile: fs.String("config", "", "path to a TOML config file"),
		dataFile:   fs.String("data", "", "path to the todo JSON file (default "+`"resource/todo.json"`+")"),
		addr:       fs.String("addr", "", "API listen address (default "+`"`+DefaultAddr+`"`+")"),
		logLevel:   fs.String("log-level", "", "log level: debug, info, warn, error"),
		logFormat:  fs.String("log-format", "", "log format: text, json, logfmt"),
		theme:      fs.String("theme", "", "color theme: classic, neon, mono"),
		rateLimit:  fs.Int("rate-limit", 0, "API requests allowed per client and window (0 disables)"),
		otel:       fs.Bool("otel", false, "export traces and metrics over OTLP/HTTP"),
	}
}

// apply copies only the flags the user actually set, so they override file
// and environment values without clobbering them with zero defaults.
func (f *flagValues) apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "data":
			cfg.DataFile = *f.dataFile
		case "addr":
			cfg.Addr = *f.addr
		case "log-level":
			cfg.LogLevel = *f.logLevel
		case "log-format":
			cfg.LogFormat = *f.logFormat
		case "theme":
			cfg.Theme = *f.theme
		case "rate-limit":
			cfg.RateLimit = *f.rateLimit
		case "otel":
			cfg.OTelEnabled = *f.otel
		}
	})
}
