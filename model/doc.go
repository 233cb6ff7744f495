// Package model defines the data contracts shared by the planner, scheduler
// and orchestrator: specifications, sophistication levels, execution modes
// and iteration history. Everything in this package is plain data; behaviour
// lives in the service packages.
package model
