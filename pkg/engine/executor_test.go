package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_BuffersUntilProcessBuffer(t *testing.T) {
	ex := NewExecutor()

	ran := make(chan struct{})
	go func() {
		ex.Submit(func() error {
			close(ran)
			return nil
		})
	}()

	select {
	case <-ran:
		t.Fatal("operation ran before the buffer was released")
	case <-time.After(50 * time.Millisecond):
	}

	ex.ProcessBuffer()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("buffered operation never ran")
	}
}

func TestExecutor_RunsImmediatelyWhenReady(t *testing.T) {
	ex := NewExecutor()
	ex.ProcessBuffer()

	ran := false
	require.NoError(t, ex.Submit(func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestExecutor_PropagatesBufferedErrors(t *testing.T) {
	ex := NewExecutor()
	wantErr := errors.New("boom")

	result := make(chan error, 1)
	go func() {
		result <- ex.Submit(func() error { return wantErr })
	}()

	// Give the submission time to land in the buffer.
	time.Sleep(50 * time.Millisecond)
	ex.ProcessBuffer()

	select {
	case err := <-result:
		assert.Equal(t, wantErr, err)
	case <-time.After(time.Second):
		t.Fatal("submit never returned")
	}
}

func TestExecutor_FailReleasesBufferedOps(t *testing.T) {
	ex := NewExecutor()
	loadErr := errors.New("load failed")

	ran := false
	result := make(chan error, 1)
	go func() {
		result <- ex.Submit(func() error {
			ran = true
			return nil
		})
	}()

	// Give the submission time to land in the buffer.
	time.Sleep(50 * time.Millisecond)
	ex.Fail(loadErr)

	select {
	case err := <-result:
		assert.Equal(t, loadErr, err)
		assert.False(t, ran, "buffered operation must not run after a failed load")
	case <-time.After(time.Second):
		t.Fatal("submit never returned after the load failed")
	}
}

func TestExecutor_SubmitAfterFailReturnsError(t *testing.T) {
	ex := NewExecutor()
	loadErr := errors.New("load failed")
	ex.Fail(loadErr)

	err := ex.Submit(func() error {
		t.Fatal("operation must not run")
		return nil
	})
	assert.Equal(t, loadErr, err)
}
