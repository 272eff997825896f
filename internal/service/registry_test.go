package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_SharesContextPerSession(t *testing.T) {
	f := newIdentityFixture(t)
	reg := NewSessionRegistry(f.svc, nil)
	defer func() { _ = reg.Close() }()

	a1, release1, err := reg.Acquire("a")
	require.NoError(t, err)
	a2, release2, err := reg.Acquire("a")
	require.NoError(t, err)
	b, releaseB, err := reg.Acquire("b")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 1, f.svc.hub.observers("a"), "one subscription per context")

	release1()
	release1()
	assert.Equal(t, 2, reg.Len(), "still referenced")

	release2()
	releaseB()
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, f.svc.hub.observers("a"))
	assert.Equal(t, 0, f.svc.hub.observers("b"))
}

func TestSessionRegistry_Close(t *testing.T) {
	f := newIdentityFixture(t)
	reg := NewSessionRegistry(f.svc, nil)

	_, release, err := reg.Acquire("a")
	require.NoError(t, err)

	require.NoError(t, reg.Close())
	require.NoError(t, reg.Close())
	assert.Equal(t, 0, f.svc.hub.observers("a"))

	release()

	_, _, err = reg.Acquire("a")
	assert.ErrorIs(t, err, ErrRegistryClosed)
}

func TestSessionRegistry_ConcurrentAcquire(t *testing.T) {
	f := newIdentityFixture(t)
	reg := NewSessionRegistry(f.svc, nil)
	defer func() { _ = reg.Close() }()

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sc, release, err := reg.Acquire("shared")
			if !assert.NoError(t, err) {
				return
			}
			_ = sc.Resolving()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, reg.Len())
}
