package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveMutation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveMutation("add_folder", nil)
	m.ObserveMutation("add_folder", nil)
	m.ObserveMutation("move_folder", errors.New("cycle"))

	require.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("add_folder", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Mutations.WithLabelValues("move_folder", "error")))
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	require.Panics(t, func() { New(reg) })
}
