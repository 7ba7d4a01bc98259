package remote

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/fpgabridge/pkg/channel"
)

func TestMetrics(t *testing.T) {
	local := channel.NewLoopback()
	srv := NewServer(local)
	srv.Metrics = NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	rep := srv.Handle(ctx, &Request{Op: OpWrite, Data: []byte{1, 2, 3, 4}})
	require.Equal(t, 4, rep.Count)
	rep = srv.Handle(ctx, &Request{Op: OpRead, Length: 2})
	require.Equal(t, 2, rep.Count)
	rep = srv.Handle(ctx, &Request{Op: OpRead, Length: 4})
	require.Equal(t, 2, rep.Count)
	srv.Handle(ctx, &Request{Op: OpStatus})

	require.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics.Transfers.WithLabelValues("write", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics.Transfers.WithLabelValues("read", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics.Transfers.WithLabelValues("read", "short")))
	require.Equal(t, 4.0, testutil.ToFloat64(srv.Metrics.Bytes.WithLabelValues("write")))
	require.Equal(t, 4.0, testutil.ToFloat64(srv.Metrics.Bytes.WithLabelValues("read")))
}

func TestNilMetrics(t *testing.T) {
	srv := NewServer(channel.NewLoopback())
	rep := srv.Handle(context.Background(), &Request{Op: OpWrite, Data: []byte{1}})
	require.Equal(t, 1, rep.Count)
}
