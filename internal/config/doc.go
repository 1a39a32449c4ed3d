// Package config provides configuration management for the podlab service.
//
// Configuration is loaded from environment variables using the env package.
// All configuration values have sensible defaults for development use; the
// pod metadata fields are expected to be injected by the Kubernetes
// downward API and fall back to sentinel values when absent.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
