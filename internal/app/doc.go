// Package app wires the dashboard server together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from .env, the YAML file and MEDDASH_* variables
//	2. Initialize logging, tracing and the Prometheus meter
//	3. Create the CSV loader, the optional file watcher and the WebSocket hub
//	4. Build the dashboard and health services
//	5. Mount handlers and middleware on a chi router
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return app.RunWithSignals()
//
// # Graceful Shutdown
//
// Run returns once its context is done. The HTTP server is drained within
// Server.ShutdownTimeout, the hub disconnects its clients and telemetry
// providers are flushed. Nothing in this package calls os.Exit.
package app
