// Package bootstrap assembles a promptkit process from its configuration.
//
// New builds the Moonshot and Ollama backends, wraps them with logging,
// tracing and metrics, and creates the chat and prompt extractor nodes.
// Every backend, the telemetry exporters and (after EnableServer) the HTTP
// server are registered as components so that Run and RunTask start them
// in order and stop them in reverse on SIGINT or SIGTERM.
//
//	cfg, err := config.Load("promptkit")
//	if err != nil {
//	    return err
//	}
//	app, err := bootstrap.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    res := app.Single.Run(ctx, params)
//	    fmt.Println(res.Response)
//	    return res.Err
//	})
package bootstrap
