package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu    sync.Mutex
	paths []string
	err   error
	block chan struct{}
}

func (f *fakePublisher) Publish(_ context.Context, path string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.err
}

func (f *fakePublisher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.paths)
}

func TestRefreshNow_PublicaYRegistraEstado(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewDashboardRefreshService(pub, DashboardRefreshConfig{IntervalMinutes: 5, Path: "out/dashboard_data.js"}, zerolog.Nop())

	require.NoError(t, svc.RefreshNow(context.Background()))
	assert.Equal(t, []string{"out/dashboard_data.js"}, pub.paths)

	st := svc.Status()
	assert.True(t, st.Enabled)
	assert.False(t, st.Running)
	assert.Empty(t, st.LastError)
	assert.False(t, st.LastCompletedAt.Before(st.LastStartedAt))
}

func TestRefreshNow_ErrorQuedaEnEstado(t *testing.T) {
	pub := &fakePublisher{err: errors.New("almacén caído")}
	svc := NewDashboardRefreshService(pub, DashboardRefreshConfig{IntervalMinutes: 1, Path: "x.js"}, zerolog.Nop())

	err := svc.RefreshNow(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "almacén caído", svc.Status().LastError)
}

func TestRefreshNow_IgnoraEjecucionSolapada(t *testing.T) {
	pub := &fakePublisher{block: make(chan struct{})}
	svc := NewDashboardRefreshService(pub, DashboardRefreshConfig{IntervalMinutes: 1, Path: "x.js"}, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- svc.RefreshNow(context.Background()) }()

	require.Eventually(t, func() bool { return svc.Status().Running }, time.Second, 5*time.Millisecond)
	assert.NoError(t, svc.RefreshNow(context.Background()))

	close(pub.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, pub.calls())
}

func TestStart_DeshabilitadoNoAgenda(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewDashboardRefreshService(pub, DashboardRefreshConfig{IntervalMinutes: 0}, zerolog.Nop())

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, svc.Status().Enabled)
	assert.Equal(t, 0, pub.calls())
}

func TestStart_EjecutaAlArrancar(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewDashboardRefreshService(pub, DashboardRefreshConfig{IntervalMinutes: 60, Path: "x.js"}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Start(ctx))

	assert.Eventually(t, func() bool { return pub.calls() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
