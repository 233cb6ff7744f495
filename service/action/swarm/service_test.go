package swarm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/runtime/orchestrator"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/scheduler"
	workermem "github.com/genwave/genwave/service/worker/memory"
)

func testSpec() *model.Specification {
	return &model.Specification{
		ID:         "3b241101-e2bb-4255-8caf-4136c566a962",
		Name:       "Landing Pages",
		Version:    "1.0.0",
		Domain:     model.DomainUI,
		Output:     model.OutputContract{Format: "html"},
		Dimensions: []string{"motion", "typography", "layout", "color"},
		Levels: []model.SophisticationLevel{
			{Rank: 1, Name: "functional"},
			{Rank: 2, Name: "refined"},
		},
	}
}

func newService(t *testing.T) *Service {
	contextLedger := ledger.New(1 << 30)
	sch, err := scheduler.New(
		scheduler.WithWorker(workermem.New()),
		scheduler.WithLedger(contextLedger),
	)
	assert.Nil(t, err)
	orch, err := orchestrator.New(
		orchestrator.WithScheduler(sch),
		orchestrator.WithLedger(contextLedger),
	)
	assert.Nil(t, err)
	srv, err := New(
		WithOrchestrator(orch),
		WithScheduler(sch),
		WithLedger(contextLedger),
	)
	assert.Nil(t, err)
	return srv
}

func TestService_Methods(t *testing.T) {
	srv := newService(t)
	assert.Equal(t, "swarm", srv.Name())
	signatures := srv.Methods()
	assert.Equal(t, 5, len(signatures))
	for _, operation := range []string{"orchestrate", "planWave", "coordinateAgents", "monitorContext", "validateSpec"} {
		assert.NotNil(t, signatures.Lookup(operation), operation)
		executable, err := srv.Method(operation)
		assert.Nil(t, err, operation)
		assert.NotNil(t, executable, operation)
	}
	_, err := srv.Method("unknown")
	assert.NotNil(t, err)
}

func TestService_orchestrate(t *testing.T) {
	srv := newService(t)
	input := &OrchestrateInput{
		Spec:      testSpec(),
		OutputDir: "/tmp/out",
		Mode:      model.Mode{Type: model.ModeBatch, Count: 7},
	}
	output := &OrchestrateOutput{}
	err := srv.orchestrate(context.Background(), input, output)
	assert.Nil(t, err)
	assert.Equal(t, 7, output.Succeeded)
	assert.Equal(t, 0, output.Failed)
	assert.Equal(t, 2, len(output.Waves))
	assert.Equal(t, 7, len(output.History))
}

func TestService_orchestrate_validation(t *testing.T) {
	srv := newService(t)
	err := srv.orchestrate(context.Background(), &OrchestrateInput{OutputDir: "/tmp/out"}, &OrchestrateOutput{})
	assert.NotNil(t, err)
	err = srv.orchestrate(context.Background(), &OrchestrateInput{
		Spec:      testSpec(),
		OutputDir: "/tmp/out",
		Mode:      model.Mode{Type: model.ModeBatch},
	}, &OrchestrateOutput{})
	assert.NotNil(t, err)
	err = srv.orchestrate(context.Background(), "bad input", &OrchestrateOutput{})
	assert.NotNil(t, err)
}

func TestService_planWave(t *testing.T) {
	srv := newService(t)
	input := &PlanInput{
		Spec:      testSpec(),
		Level:     2,
		Mode:      model.Mode{Type: model.ModeBatch, Count: 5},
		OutputDir: "/tmp/out",
	}
	output := &PlanOutput{}
	err := srv.planWave(context.Background(), input, output)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(output.Wave.Assignments))
	assert.Equal(t, 2, output.Level.Rank)
	// 5 assignments * 5000 base units * rank 2 * 1.5
	assert.Equal(t, 75000, output.ContextEstimate)
}

func TestService_coordinateAgents(t *testing.T) {
	srv := newService(t)
	planOutput := &PlanOutput{}
	err := srv.planWave(context.Background(), &PlanInput{
		Spec:      testSpec(),
		Level:     1,
		Mode:      model.Mode{Type: model.ModeBatch, Count: 3},
		OutputDir: "/tmp/out",
	}, planOutput)
	assert.Nil(t, err)

	input := &CoordinateInput{
		WaveID:        planOutput.Wave.ID,
		Level:         1,
		Assignments:   planOutput.Wave.Assignments,
		ContextBudget: planOutput.ContextEstimate,
	}
	output := &CoordinateOutput{}
	err = srv.coordinateAgents(context.Background(), input, output)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(output.Results))
	for _, result := range output.Results {
		assert.True(t, result.Success)
	}
	// the wave's reservation was released
	assert.Equal(t, 0, output.Ledger.Used)
}

func TestService_monitorContext(t *testing.T) {
	srv := newService(t)
	assert.Nil(t, srv.ledger.Reserve("wave-x", 900))

	output := &MonitorOutput{}
	err := srv.monitorContext(context.Background(), &MonitorInput{WaveID: "wave-x", Threshold: 0.5}, output)
	assert.Nil(t, err)
	assert.Equal(t, 900, output.Ledger.Used)
	assert.Equal(t, 900, output.WaveReservation)
	assert.False(t, output.OverThreshold)
	assert.Equal(t, float64(100), output.Metrics.MeanProgress)
}

func TestService_validateSpec(t *testing.T) {
	srv := newService(t)

	output := &ValidateOutput{}
	err := srv.validateSpec(context.Background(), &ValidateInput{Spec: testSpec()}, output)
	assert.Nil(t, err)
	assert.True(t, output.Valid)
	assert.NotEmpty(t, output.Defaults.Requirements)

	bad := testSpec()
	bad.Dimensions = []string{"motion"}
	output = &ValidateOutput{}
	err = srv.validateSpec(context.Background(), &ValidateInput{Spec: bad}, output)
	assert.Nil(t, err)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Errors)

	output = &ValidateOutput{}
	err = srv.validateSpec(context.Background(), &ValidateInput{Content: "name: incomplete", Format: "yaml"}, output)
	assert.Nil(t, err)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Errors)
}
