// Package requestid carries correlation identifiers through context.Context.
//
// Every dispatched search call gets an id so that the log records of all its
// host attempts can be grouped together. Callers that already have an id (for
// example from an incoming HTTP request) store it with WithContext and the
// dispatcher reuses it; otherwise Ensure generates a UUIDv4.
//
// # Logger integration
//
//	log := logger.New(logger.WithContextExtractors(requestid.Attr))
//
// Ids longer than 128 characters or containing anything other than letters,
// digits, '-' and '_' are replaced by a fresh one.
package requestid
