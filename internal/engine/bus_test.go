package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/logger"
)

func TestNewBus(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{"valid capacity", 16, false},
		{"capacity of one", 1, false},
		{"zero capacity", 0, true},
		{"negative capacity", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBus(tt.capacity, logger.Noop())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.capacity, b.Cap())
			assert.Equal(t, 0, b.Len())
		})
	}
}

func TestBusTrySend(t *testing.T) {
	b, err := NewBus(2, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, b.TrySend(Tick{}))
	require.NoError(t, b.TrySend(Tick{}))
	assert.Equal(t, 2, b.Len())

	// Third send finds the bus full.
	err = b.TrySend(Tick{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrBus))
}

func TestBusOrderPreserved(t *testing.T) {
	b, err := NewBus(16, logger.Noop())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, b.TrySend(TaskRemoved{ID: string(rune('a' + i))}))
	}
	b.Close()

	var got []string
	for ev := range b.Events() {
		got = append(got, ev.(TaskRemoved).ID)
	}

	require.Len(t, got, 10)
	for i, id := range got {
		assert.Equal(t, string(rune('a'+i)), id, "events must arrive in send order")
	}
}

func TestBusSendBlocksUntilSpace(t *testing.T) {
	b, err := NewBus(1, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, b.TrySend(Tick{}))

	// Free a slot shortly after the second send starts backing off.
	go func() {
		time.Sleep(20 * time.Millisecond)
		<-b.Events()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, b.Send(ctx, Tick{}))
}

func TestBusSendBudgetExhausted(t *testing.T) {
	b, err := NewBus(1, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, b.TrySend(Tick{}))

	// Nobody consumes, so the budget runs out.
	err = b.SendBudget(context.Background(), Tick{}, 30*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrBus))
}

func TestBusSendContextCancelled(t *testing.T) {
	b, err := NewBus(1, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, b.TrySend(Tick{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = b.Send(ctx, Tick{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBusClose(t *testing.T) {
	b, err := NewBus(4, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, b.TrySend(Tick{}))
	b.Close()
	b.Close() // idempotent

	// Sends after close fail instead of panicking.
	err = b.TrySend(Tick{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrBus))

	err = b.Send(context.Background(), Tick{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrBus))

	// The queued event is still delivered, then the channel drains.
	_, ok := <-b.Events()
	assert.True(t, ok)
	_, ok = <-b.Events()
	assert.False(t, ok)
}
