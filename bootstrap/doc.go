// Package bootstrap runs an application's lifecycle: typed config defaults
// and validation, logger setup, start and configure phases, a startup
// summary, and graceful shutdown of tracked resources on task completion or
// SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnConfigure(wire)
//	if err := app.RunTask(ctx, repl); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
