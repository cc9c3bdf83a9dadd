// Package config provides configuration management for the nested-models tools.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Log: Logging level and format (LOG_LEVEL, LOG_FORMAT)
//   - Model: Runtime defaults such as the identity attribute (MODEL_ID_ATTRIBUTE)
//   - Metrics: Prometheus counters (METRICS_ENABLED, METRICS_NAMESPACE)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Model.IDAttribute)
package config
