// Package handler is the first layer after the router.
//
// It binds requests into typed payloads, runs the validation package
// checks, calls the service layer and writes the JSON response. Failures
// are returned to the global error handler instead of being written here.
package handler
