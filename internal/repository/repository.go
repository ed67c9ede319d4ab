// Package repository handles all interactions with the country store.
//
// It owns the in-process collection and the rules for reading and
// mutating it, abstracting storage away from the service layer.
package repository
