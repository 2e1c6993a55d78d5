/*
Package httpserver runs the webhook API and, optionally, the metrics server.

The router wraps every request in the flashbots httplogger middleware and
mounts, next to the webhook routes registered by the handler:

  - GET /livez - Liveness check
  - GET /readyz - Readiness check, 503 while draining
  - GET /drain - Mark the server as not ready
  - GET /undrain - Mark the server as ready again
  - /debug/pprof/* - Only when EnablePprof is set

Shutdown marks the server not ready, waits DrainDuration, then shuts the
API and metrics servers down within GracefulShutdownDuration.

# Example Usage

	metricsSrv, err := metrics.New(common.PackageName, cfg.MetricsAddr)
	if err != nil {
		return err
	}
	handler := webhookhandler.NewHandler(service, metricsSrv.Recorder(), 50*time.Second, logger)

	server, err := httpserver.New(cfg, handler, metricsSrv)
	if err != nil {
		return err
	}
	server.RunInBackground()
	defer server.Shutdown()
*/
package httpserver
