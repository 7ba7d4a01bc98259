package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type closeFunc func() error

func (f closeFunc) Close() error {
	return f()
}

func TestRunnerStopsAll(t *testing.T) {
	errFail := errors.New("fail")
	r := NewRunner()
	r.Go(
		NamedRun("waiter", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		RunFunc(func(ctx context.Context) error {
			return errFail
		}),
	)
	err := r.Wait()
	require.Error(t, err)
	var aggr *AggregatedError
	require.True(t, errors.As(err, &aggr))
	require.Equal(t, []error{errFail}, aggr.Errors)
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	unblock := make(chan struct{})
	var closed int
	closer := closeFunc(func() error {
		closed++
		close(unblock)
		return nil
	})
	time.AfterFunc(10*time.Millisecond, cancel)
	err := RunWithContextCloser(ctx, closer, func() error {
		<-unblock
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, closed)

	closed = 0
	closer = closeFunc(func() error {
		closed++
		return nil
	})
	err = RunWithContextCloser(context.Background(), closer, func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, 1, closed)
}
