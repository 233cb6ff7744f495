// Package types defines the operation contract every exposed service
// implements: a name, a set of typed signatures and an executable per
// signature. Request and response types are plain JSON-serialisable structs
// so any transport can carry them.
package types
