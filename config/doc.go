// Package config loads layered configuration: a config.yml, an optional
// .env file, then process environment variables on top. Environment keys
// map onto nested config keys, so TRANSLATOR_API_KEY sets translator.api_key.
//
//	var cfg AppConfig
//	err := config.LoadConfig("polyglot", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithDefaults(map[string]any{"session.debounce": "500ms"}))
//
// ServiceConfig carries the name, environment and logging settings every
// binary shares.
package config
