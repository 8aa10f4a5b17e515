package orderqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pharmatrack/pharmatrack/internal/domain/order"
)

func mustOrder(t *testing.T, id string, urgency domain.Urgency) *domain.Order {
	t.Helper()
	o, err := domain.New(id, "customer", 1, 1, urgency)
	require.NoError(t, err)
	return o
}

func TestPopEmptyQueue(t *testing.T) {
	q := New()

	_, err := q.Pop()
	assert.ErrorIs(t, err, domain.ErrEmptyQueue)

	_, err = q.Peek()
	assert.ErrorIs(t, err, domain.ErrEmptyQueue)
}

func TestPopHighestUrgencyFirst(t *testing.T) {
	q := New()
	q.Push(mustOrder(t, "low", domain.UrgencyLow))
	q.Push(mustOrder(t, "high", domain.UrgencyHigh))
	q.Push(mustOrder(t, "medium", domain.UrgencyMedium))

	for _, want := range []string{"high", "medium", "low"} {
		o, err := q.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, o.ID)
	}
	assert.Equal(t, 0, q.Len())
}

func TestEqualUrgencyMostRecentFirst(t *testing.T) {
	q := New()
	q.Push(mustOrder(t, "first", domain.UrgencyMedium))
	q.Push(mustOrder(t, "second", domain.UrgencyMedium))
	q.Push(mustOrder(t, "third", domain.UrgencyMedium))

	for _, want := range []string{"third", "second", "first"} {
		o, err := q.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, o.ID)
	}
}

func TestMixedUrgencyWithTies(t *testing.T) {
	q := New()
	q.Push(mustOrder(t, "low-1", domain.UrgencyLow))
	q.Push(mustOrder(t, "high-1", domain.UrgencyHigh))
	q.Push(mustOrder(t, "low-2", domain.UrgencyLow))
	q.Push(mustOrder(t, "high-2", domain.UrgencyHigh))
	q.Push(mustOrder(t, "medium-1", domain.UrgencyMedium))

	for _, want := range []string{"high-2", "high-1", "medium-1", "low-2", "low-1"} {
		o, err := q.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, o.ID)
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := New()
	q.Push(mustOrder(t, "only", domain.UrgencyHigh))

	o, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "only", o.ID)
	assert.Equal(t, 1, q.Len())

	popped, err := q.Pop()
	require.NoError(t, err)
	assert.Equal(t, "only", popped.ID)
	assert.Equal(t, 0, q.Len())
}

func TestPushNilIgnored(t *testing.T) {
	q := New()
	q.Push(nil)
	assert.Equal(t, 0, q.Len())
}
