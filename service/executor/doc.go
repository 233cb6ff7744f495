// Package executor bridges transports and registered services: it resolves
// an operation by service and method name, converts the raw request payload
// into the operation's typed input and invokes it.
package executor
