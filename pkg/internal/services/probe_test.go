package services

import (
	"context"
	"errors"
	"testing"
	"time"

	localCache "git.solsynth.dev/hypernet/chainpoll/pkg/internal/cache"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/chain"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/models"
)

type fakeStatus struct {
	chainId uint64
	block   uint64
	err     error
}

func (f fakeStatus) ChainID(ctx context.Context) (uint64, error) {
	return f.chainId, f.err
}

func (f fakeStatus) BlockNumber(ctx context.Context) (uint64, error) {
	return f.block, nil
}

func newTestProber(t *testing.T, status fakeStatus) *ChainProber {
	store, err := localCache.NewStore()
	if err != nil {
		t.Fatalf("Failed to create cache store: %v", err)
	}
	t.Cleanup(store.Close)

	prober := NewChainProber(status, store, chain.CronosTestnetID, time.Minute)
	prober.Now = fixedClock(1700000000)
	return prober
}

func TestProbeHealthy(t *testing.T) {
	prober := newTestProber(t, fakeStatus{chainId: chain.CronosTestnetID, block: 42})

	probe := prober.Probe(context.Background())
	if !probe.OK {
		t.Fatalf("Expected probe to succeed, got %q", probe.Error)
	}
	if probe.BlockNumber != 42 || probe.ChainID != chain.CronosTestnetID {
		t.Errorf("Unexpected probe %+v", probe)
	}
}

func TestProbeWrongChain(t *testing.T) {
	prober := newTestProber(t, fakeStatus{chainId: 25, block: 42})

	probe := prober.Probe(context.Background())
	if probe.OK {
		t.Fatal("Expected probe to fail on a foreign chain")
	}
	if probe.ChainID != 25 || probe.Error == "" {
		t.Errorf("Unexpected probe %+v", probe)
	}
}

func TestProbeUnreachable(t *testing.T) {
	prober := newTestProber(t, fakeStatus{err: errors.New("connection refused")})

	probe := prober.Probe(context.Background())
	if probe.OK || probe.Error == "" {
		t.Errorf("Expected failed probe with error, got %+v", probe)
	}
}

func TestChainProbeTaskRecordsResult(t *testing.T) {
	prober := newTestProber(t, fakeStatus{chainId: chain.CronosTestnetID, block: 7})

	var notified []models.ChainProbe
	prober.Listeners = append(prober.Listeners, func(probe models.ChainProbe) {
		notified = append(notified, probe)
	})

	if _, ok := prober.LastProbe(context.Background()); ok {
		t.Fatal("Expected no probe before the first run")
	}

	prober.DoChainProbeTask()

	if len(notified) != 1 || !notified[0].OK {
		t.Fatalf("Expected one successful notification, got %+v", notified)
	}

	last, ok := prober.LastProbe(context.Background())
	if !ok {
		t.Fatal("Expected a recorded probe")
	}
	if !last.OK || last.BlockNumber != 7 {
		t.Errorf("Unexpected recorded probe %+v", last)
	}
	if !last.CheckedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Unexpected check time %v", last.CheckedAt)
	}
}
