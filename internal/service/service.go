// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated fields from the handler, runs the country operations against
// the store and turns store misses into HTTP-level errors.
package service
