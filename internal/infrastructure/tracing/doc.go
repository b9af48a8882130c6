/*
Package tracing provides lightweight request tracing for the desktop API.

Every HTTP request gets a span. A caller-supplied X-Trace-ID is continued,
otherwise a new req_ ULID is minted; the response always carries the trace
and span ids so a client can correlate its logs with ours. WebSocket
commands start child spans from the upgrade request's context.

# Usage

	tracer := tracing.New("lexosd", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "ws.open")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

Finished spans are buffered (1000) and written to the zap logger by a
single collector goroutine. Spans are dropped, with a warning, when the
buffer is full.
*/
package tracing
