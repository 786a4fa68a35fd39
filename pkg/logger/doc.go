// Package logger builds *slog.Logger values with functional options and
// provides attribute constructors shared by the searchkit packages.
//
// New picks a text or JSON handler and wraps it so that ContextExtractor
// callbacks add attributes taken from the context of each call. An extracted
// attribute is skipped when the logger already carries the same key, which
// lets the dispatcher bind request_id explicitly without duplicating the one
// found in context.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithTextFormatter(),
//		logger.WithContextExtractors(requestid.Attr),
//	)
//	log.InfoContext(ctx, "search finished", logger.Index("products"), logger.Duration(d))
//
// ParseLevel and ParseFormat validate user supplied values such as command
// line flags. Error and Errors return an empty attribute for nil errors, so
// they can be passed without a nil check.
package logger
