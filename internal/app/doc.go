// Package app provides the lifecycle shared by the salescli commands.
//
// A command loads its configuration, applies its flags and then calls
// NewApplication, which:
//
//	1. Resolves and creates the data, reports, visualizations and logs directories
//	2. Initializes the structured logger
//	3. Tags the context with a run id picked up by every log line
//	4. Initializes tracing and metrics
//
// Work is done in stages through RunStage so each stage gets a span, a
// duration sample and, on failure, an error count by type. Shutdown writes the
// metrics textfile and closes the log file.
//
// # Usage
//
//	ctx, application, err := app.NewApplication(ctx, "analyzer", cfg)
//	if err != nil {
//	    return err
//	}
//	defer application.Shutdown(ctx)
//
//	err = application.RunStage(ctx, "load_products", func(ctx context.Context) error {
//	    ...
//	})
package app
