// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. HTTPError for API responses) so every client receives
// the same JSON shape no matter which layer aborted the request.
package errs
