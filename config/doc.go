// Package config loads promptkit configuration.
//
// It uses Viper to load configuration from a config.yml or config.json file
// and from environment variables, with an optional .env file loaded through
// godotenv. Every UPPER_SNAKE environment variable is bound to its possible
// nested keys, so MOONSHOT_API_KEY fills moonshot.api_key.
//
// The top-level MOONSHOT_API_KEY key of a legacy config.json is also
// honoured.
//
// Usage:
//
//	cfg, err := config.Load("promptkit", config.WithConfigFile("config.json"))
//	if err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
