package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGo_AwaitReturnsValue(t *testing.T) {
	t.Parallel()

	f := Go(func() (int, error) { return 42, nil })
	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestGo_StartsEagerly(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	f := Go(func() (string, error) {
		close(started)
		return "ok", nil
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("function was not started before Await")
	}

	<-f.Done()
	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestGo_PanicBecomesError(t *testing.T) {
	t.Parallel()

	f := Go(func() (int, error) { panic("boom") })
	_, err := f.Await()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRun_WaitReturnsError(t *testing.T) {
	t.Parallel()

	want := errors.New("copy failed")
	tk := Run(func() error { return want })
	assert.ErrorIs(t, tk.Wait(), want)
	// A second Wait returns the same result.
	assert.ErrorIs(t, tk.Wait(), want)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	want := errors.New("second failed")
	tasks := []*Task{
		Run(func() error { return nil }),
		Run(func() error { return want }),
		nil,
	}
	assert.ErrorIs(t, WaitAll(tasks...), want)
	assert.NoError(t, WaitAll())
	assert.NoError(t, WaitAll(Run(func() error { return nil })))
}
