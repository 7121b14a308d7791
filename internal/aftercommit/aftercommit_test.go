package aftercommit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_WithoutQueueRunsImmediately(t *testing.T) {
	ran := false
	Do(context.Background(), func(context.Context) { ran = true })
	assert.True(t, ran)
	assert.Nil(t, FromContext(context.Background()))
}

func TestDo_WithQueueDefersUntilRun(t *testing.T) {
	ctx, q := WithQueue(context.Background())
	require.Same(t, q, FromContext(ctx))

	var order []int
	Do(ctx, func(context.Context) { order = append(order, 1) })
	Do(ctx, func(context.Context) { order = append(order, 2) })

	assert.Empty(t, order)
	assert.Equal(t, 2, q.Len())

	q.Run(context.Background())
	assert.Equal(t, []int{1, 2}, order)
	assert.Zero(t, q.Len())

	q.Run(context.Background())
	assert.Equal(t, []int{1, 2}, order)
}

func TestQueue_Discard(t *testing.T) {
	ctx, q := WithQueue(context.Background())

	ran := false
	Do(ctx, func(context.Context) { ran = true })
	q.Discard()
	q.Run(ctx)

	assert.False(t, ran)
	assert.Zero(t, q.Len())
}
