package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/runtime/wave"
)

func testSpec() *model.Specification {
	return &model.Specification{
		ID:      "5f0d2b3a-1d0e-4c8f-9a67-0b9a4f2a7c11",
		Name:    "landing-pages",
		Version: "1.0.0",
		Domain:  model.DomainUI,
		Output: model.OutputContract{
			Format:           "html",
			QualityStandards: []string{"valid markup"},
		},
		Dimensions: []string{"accessibility", "visual_design", "motion", "typography"},
		Levels: []model.SophisticationLevel{
			{Rank: 1, Name: "baseline", QualityExpectations: []string{"clean layout"}},
			{Rank: 2, Name: "refined", QualityExpectations: []string{"polished detail"}},
		},
	}
}

func TestService_WaveSize(t *testing.T) {
	svc := New()
	testCases := []struct {
		name     string
		mode     model.Mode
		existing int
		expect   int
	}{
		{name: "single", mode: model.Mode{Type: model.ModeSingle}, expect: 1},
		{name: "batch capped by batch size", mode: model.Mode{Type: model.ModeBatch, Count: 7, BatchSize: 5}, existing: 0, expect: 5},
		{name: "batch remainder", mode: model.Mode{Type: model.ModeBatch, Count: 7, BatchSize: 5}, existing: 5, expect: 2},
		{name: "batch default size", mode: model.Mode{Type: model.ModeBatch, Count: 12}, existing: 0, expect: 5},
		{name: "infinite fixed batch", mode: model.Mode{Type: model.ModeInfinite}, existing: 40, expect: 5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, svc.waveSize(tc.mode, tc.existing))
		})
	}
}

func TestService_Plan(t *testing.T) {
	svc := New()
	spec := testSpec()
	plan, err := svc.Plan(context.Background(), spec, model.Mode{Type: model.ModeBatch, Count: 7, BatchSize: 5}, nil, spec.Levels[0], "/tmp/out")
	assert.NoError(t, err)
	assert.Equal(t, wave.StatusPlanned, plan.Wave.Status)
	assert.Len(t, plan.Wave.Assignments, 5)

	// Agent ids and dimension focuses are pairwise distinct while the pool
	// still has unused dimensions; the pool (4) is smaller than the wave (5)
	// so exactly one repeat is allowed by the exhaustion fallback.
	agents := map[string]bool{}
	focuses := map[string]int{}
	for _, assignment := range plan.Wave.Assignments {
		agents[assignment.AgentID] = true
		focuses[assignment.InnovationFocus]++
	}
	assert.Len(t, agents, 5)
	assert.Len(t, focuses, 4)

	// Iteration numbers continue history gap-free.
	for i, assignment := range plan.Wave.Assignments {
		assert.Equal(t, i+1, assignment.Iteration)
	}
}

func TestService_PlanSkipsUsedDimensions(t *testing.T) {
	svc := New()
	spec := testSpec()
	history := model.History{
		{Number: 1, Location: "out/1.html", Dimensions: []string{"accessibility"}},
		{Number: 2, Location: "out/2.html", Dimensions: []string{"visual_design"}},
	}
	plan, err := svc.Plan(context.Background(), spec, model.Mode{Type: model.ModeBatch, Count: 4, BatchSize: 2}, history, spec.Levels[0], "out")
	assert.NoError(t, err)
	assert.Len(t, plan.Wave.Assignments, 2)
	assert.Equal(t, "motion", plan.Wave.Assignments[0].InnovationFocus)
	assert.Equal(t, "typography", plan.Wave.Assignments[1].InnovationFocus)
	assert.Equal(t, 3, plan.Wave.Assignments[0].Iteration)
}

func TestService_PlanExhaustedDimensions(t *testing.T) {
	svc := New()
	spec := testSpec()
	spec.Dimensions = []string{"accessibility", "visual_design"}
	history := model.History{
		{Number: 1, Dimensions: []string{"accessibility"}},
		{Number: 2, Dimensions: []string{"visual_design"}},
	}
	plan, err := svc.Plan(context.Background(), spec, model.Mode{Type: model.ModeBatch, Count: 4, BatchSize: 2}, history, spec.Levels[0], "out")
	assert.NoError(t, err)
	// Every dimension already explored: assignment proceeds from the full
	// list again.
	assert.Equal(t, "accessibility", plan.Wave.Assignments[0].InnovationFocus)
	assert.Equal(t, "visual_design", plan.Wave.Assignments[1].InnovationFocus)
}

func TestService_Estimates(t *testing.T) {
	svc := New()
	spec := testSpec()
	plan, err := svc.Plan(context.Background(), spec, model.Mode{Type: model.ModeBatch, Count: 5, BatchSize: 5}, nil, spec.Levels[1], "out")
	assert.NoError(t, err)
	// 5 assignments x 5000 base x (rank 2 x 1.5)
	assert.Equal(t, 75000, plan.Wave.ContextBudget)
	// 120s x (rank 2 x 1.3)
	assert.Equal(t, time.Duration(312*float64(time.Second)), plan.Wave.EstimatedDuration)
}

func TestService_Standards(t *testing.T) {
	svc := New()
	spec := testSpec()
	plan, err := svc.Plan(context.Background(), spec, model.Mode{Type: model.ModeSingle}, nil, spec.Levels[0], "out")
	assert.NoError(t, err)
	standards := plan.Wave.Assignments[0].Standards
	assert.Equal(t, []string{"valid markup"}, standards.Functional)
	assert.Equal(t, []string{"clean layout"}, standards.Design)
	assert.Len(t, standards.Uniqueness, 3)
	// UI domain table.
	assert.Contains(t, standards.DomainSpecific[0], "accessibility")
	assert.NotEmpty(t, standards.Performance)
}

func TestService_StandardsDomainFallback(t *testing.T) {
	svc := New()
	spec := testSpec()
	spec.Domain = model.Domain("AUDIO")
	plan, err := svc.Plan(context.Background(), spec, model.Mode{Type: model.ModeSingle}, nil, spec.Levels[0], "out")
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultsFor(model.DomainGeneric).Requirements, plan.Wave.Assignments[0].Standards.DomainSpecific)
}
