package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/runtime/wave"
	historymem "github.com/genwave/genwave/service/dao/history/memory"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/scheduler"
	"github.com/genwave/genwave/service/worker/memory"
)

func testSpec() *model.Specification {
	return &model.Specification{
		ID:      "3b241101-e2bb-4255-8caf-4136c566a962",
		Name:    "Landing Pages",
		Version: "1.0.0",
		Domain:  model.DomainUI,
		Output:  model.OutputContract{Format: "html"},
		Dimensions: []string{
			"motion", "typography", "layout", "color",
		},
		Levels: []model.SophisticationLevel{
			{Rank: 1, Name: "functional"},
			{Rank: 2, Name: "refined"},
			{Rank: 3, Name: "innovative"},
		},
	}
}

func newService(t *testing.T, contextLedger *ledger.Service, workerService *memory.Service, options ...Option) *Service {
	sch, err := scheduler.New(
		scheduler.WithWorker(workerService),
		scheduler.WithLedger(contextLedger),
	)
	assert.Nil(t, err)
	options = append([]Option{
		WithScheduler(sch),
		WithLedger(contextLedger),
	}, options...)
	srv, err := New(options...)
	assert.Nil(t, err)
	return srv
}

func TestService_Run_single(t *testing.T) {
	contextLedger := ledger.New(1 << 30)
	srv := newService(t, contextLedger, memory.New())

	output, err := srv.Run(context.Background(), testSpec(), model.Mode{Type: model.ModeSingle}, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(output.Waves))
	assert.Equal(t, 1, len(output.Results))
	assert.Equal(t, 1, output.Succeeded())
	assert.Equal(t, 1, len(output.History))
	assert.Equal(t, StopGoalReached, output.StopReason)
	// the run's cumulative reservation is released when it ends
	assert.Equal(t, 0, contextLedger.Status().Used)
}

func TestService_Run_batchClimbsLevels(t *testing.T) {
	store := historymem.New()
	srv := newService(t, ledger.New(1<<30), memory.New(), WithHistoryStore(store))

	mode := model.Mode{Type: model.ModeBatch, Count: 12}
	output, err := srv.Run(context.Background(), testSpec(), mode, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 3, len(output.Waves))
	for i, w := range output.Waves {
		assert.Equal(t, i+1, w.Level)
		assert.Equal(t, wave.StatusCompleted, w.GetStatus())
	}
	// 5 + 5 + 2
	assert.Equal(t, 5, len(output.Waves[0].Assignments))
	assert.Equal(t, 5, len(output.Waves[1].Assignments))
	assert.Equal(t, 2, len(output.Waves[2].Assignments))

	assert.Equal(t, 12, len(output.History))
	assert.Nil(t, output.History.Validate())

	persisted, err := store.Load(context.Background(), "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 12, len(persisted))
}

func TestService_Run_batchRetriesAfterFailure(t *testing.T) {
	var calls int64
	handler := func(ctx context.Context, assignment *wave.Assignment, w *wave.Wave) (*wave.Outcome, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			return nil, errors.New("generation failed")
		}
		return &wave.Outcome{Location: "ok", QualityScore: 80, UniquenessScore: 80}, nil
	}
	srv := newService(t, ledger.New(1<<30), memory.New(memory.WithHandler(handler)))

	mode := model.Mode{Type: model.ModeBatch, Count: 3, BatchSize: 2}
	output, err := srv.Run(context.Background(), testSpec(), mode, "/tmp/out")
	assert.Nil(t, err)
	// first wave lost one iteration, a follow-up wave made up the shortfall
	assert.Equal(t, 2, len(output.Waves))
	assert.Equal(t, 4, len(output.Results))
	assert.Equal(t, 3, output.Succeeded())
	assert.Equal(t, 3, len(output.History))
	assert.Nil(t, output.History.Validate())
}

func TestService_Run_resumesFromHistory(t *testing.T) {
	store := historymem.New()
	existing := []model.IterationRecord{}
	for i := 1; i <= 10; i++ {
		existing = append(existing, model.IterationRecord{Number: i, Location: "earlier"})
	}
	assert.Nil(t, store.Append(context.Background(), "/tmp/out", existing...))

	srv := newService(t, ledger.New(1<<30), memory.New(), WithHistoryStore(store))
	mode := model.Mode{Type: model.ModeBatch, Count: 12}
	output, err := srv.Run(context.Background(), testSpec(), mode, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(output.Waves))
	assert.Equal(t, 2, len(output.Waves[0].Assignments))
	assert.Equal(t, 11, output.Waves[0].Assignments[0].Iteration)
	assert.Equal(t, 12, len(output.History))
}

func TestService_Run_batchAlreadySatisfied(t *testing.T) {
	store := historymem.New()
	assert.Nil(t, store.Append(context.Background(), "/tmp/out",
		model.IterationRecord{Number: 1, Location: "earlier"},
	))
	srv := newService(t, ledger.New(1<<30), memory.New(), WithHistoryStore(store))
	output, err := srv.Run(context.Background(), testSpec(), model.Mode{Type: model.ModeBatch, Count: 1}, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(output.Waves))
	assert.Equal(t, StopGoalReached, output.StopReason)
}

func TestService_Run_infiniteStopsAtThreshold(t *testing.T) {
	// wave 1 costs 5*5000*1*1.5 = 37500; with total capacity 40000 the run
	// crosses the 0.8 threshold after a single wave and shuts down cleanly
	contextLedger := ledger.New(40000)
	srv := newService(t, contextLedger, memory.New())

	output, err := srv.Run(context.Background(), testSpec(), model.Mode{Type: model.ModeInfinite}, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, StopBudgetThreshold, output.StopReason)
	assert.Equal(t, 1, len(output.Waves))
	assert.Equal(t, 5, output.Succeeded())
	assert.Equal(t, 5, len(output.History))
}

func TestService_Run_cancelledContextPreservesWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handler := func(ctx context.Context, assignment *wave.Assignment, w *wave.Wave) (*wave.Outcome, error) {
		cancel()
		return &wave.Outcome{Location: "ok", QualityScore: 80, UniquenessScore: 80}, nil
	}
	srv := newService(t, ledger.New(1<<30), memory.New(memory.WithHandler(handler)))

	mode := model.Mode{Type: model.ModeBatch, Count: 10}
	output, err := srv.Run(ctx, testSpec(), mode, "/tmp/out")
	assert.NotNil(t, err)
	var runErr *Error
	assert.True(t, errors.As(err, &runErr))
	assert.Same(t, output, runErr.Output)
	// the first wave's successes were recorded before the stop
	assert.Equal(t, 5, output.Succeeded())
	assert.Equal(t, 5, len(output.History))
}

func TestService_Run_validation(t *testing.T) {
	srv := newService(t, ledger.New(1<<30), memory.New())
	_, err := srv.Run(context.Background(), nil, model.Mode{Type: model.ModeSingle}, "/tmp/out")
	assert.NotNil(t, err)
	_, err = srv.Run(context.Background(), testSpec(), model.Mode{Type: model.ModeSingle}, "")
	assert.NotNil(t, err)
	spec := testSpec()
	spec.Levels = nil
	_, err = srv.Run(context.Background(), spec, model.Mode{Type: model.ModeSingle}, "/tmp/out")
	assert.NotNil(t, err)
}
