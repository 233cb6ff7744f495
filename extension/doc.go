// Package extension holds the run-time registries binding exposed services
// and their input/output Go types, so transports and embedding applications
// can resolve both by name.
package extension
