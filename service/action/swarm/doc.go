// Package swarm is the operation surface of the module: orchestrate,
// planWave, coordinateAgents, monitorContext and validateSpec, each a typed
// request/response pair registered under the "swarm" service name.
package swarm
