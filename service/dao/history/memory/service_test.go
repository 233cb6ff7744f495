package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genwave/genwave/model"
)

func TestService_LoadAppend(t *testing.T) {
	srv := New()
	ctx := context.Background()

	loaded, err := srv.Load(ctx, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(loaded))

	err = srv.Append(ctx, "/tmp/out",
		model.IterationRecord{Number: 1, Location: "iteration-1", Dimensions: []string{"motion"}},
		model.IterationRecord{Number: 2, Location: "iteration-2", Dimensions: []string{"typography"}},
	)
	assert.Nil(t, err)

	loaded, err = srv.Load(ctx, "/tmp/out")
	assert.Nil(t, err)
	assert.Equal(t, 2, len(loaded))
	assert.Equal(t, 3, loaded.NextNumber())

	// other directories remain independent
	loaded, err = srv.Load(ctx, "/tmp/other")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(loaded))
}

func TestService_AppendRejectsGaps(t *testing.T) {
	srv := New()
	ctx := context.Background()
	err := srv.Append(ctx, "/tmp/out", model.IterationRecord{Number: 1, Location: "iteration-1"})
	assert.Nil(t, err)
	err = srv.Append(ctx, "/tmp/out", model.IterationRecord{Number: 3, Location: "iteration-3"})
	assert.NotNil(t, err)
	loaded, _ := srv.Load(ctx, "/tmp/out")
	assert.Equal(t, 1, len(loaded))
}
