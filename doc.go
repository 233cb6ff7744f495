// Package genwave coordinates waves of generation tasks executed by
// concurrent worker agents under a shared context budget.
//
// A run takes a validated specification (what to generate, along which
// innovation dimensions, at which sophistication levels), plans waves of
// non-duplicating assignments, executes them in bounded concurrent batches
// and records each successful iteration so later waves and resumed runs
// build on prior work instead of repeating it.
//
// Applications embed the engine through the root facade:
//
//	srv, _ := genwave.New(genwave.WithWorker(myWorker))
//	rt := srv.Runtime()
//	out, _ := rt.Orchestrate(ctx, &swarm.OrchestrateInput{
//	    Location:  "specs/landing.yaml",
//	    OutputDir: "work/landing",
//	    Mode:      model.Mode{Type: model.ModeBatch, Count: 10},
//	})
//
// The same five operations (orchestrate, planWave, coordinateAgents,
// monitorContext, validateSpec) are also dispatchable by name through
// Runtime.Execute, which is what transport adapters use.
package genwave
