package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genwave/genwave/model"
)

func TestService_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	srv, err := New(path)
	assert.Nil(t, err)
	ctx := context.Background()

	loaded, err := srv.Load(ctx, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(loaded))

	err = srv.Append(ctx, "/tmp/out",
		model.IterationRecord{Number: 1, Location: "iteration-1", QualityScore: 70, UniquenessScore: 60},
		model.IterationRecord{Number: 2, Location: "iteration-2", QualityScore: 75, UniquenessScore: 80},
	)
	assert.Nil(t, err)
	err = srv.Append(ctx, "/tmp/other", model.IterationRecord{Number: 1, Location: "a"})
	assert.Nil(t, err)
	assert.Nil(t, srv.Close())

	// reopen and read back in iteration order
	srv, err = New(path)
	assert.Nil(t, err)
	defer srv.Close()
	loaded, err = srv.Load(ctx, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 2, len(loaded))
	assert.Equal(t, 1, loaded[0].Number)
	assert.Equal(t, 2, loaded[1].Number)
	other, err := srv.Load(ctx, "/tmp/other")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(other))
}

func TestService_AppendRejectsGaps(t *testing.T) {
	srv, err := New(filepath.Join(t.TempDir(), "history.db"))
	assert.Nil(t, err)
	defer srv.Close()
	ctx := context.Background()

	assert.Nil(t, srv.Append(ctx, "/tmp/out", model.IterationRecord{Number: 1, Location: "iteration-1"}))
	assert.NotNil(t, srv.Append(ctx, "/tmp/out", model.IterationRecord{Number: 3, Location: "iteration-3"}))

	loaded, err := srv.Load(ctx, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(loaded))
}
