package services

import (
	"context"
	"fmt"
	"time"

	localCache "git.solsynth.dev/hypernet/chainpoll/pkg/internal/cache"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

const chainProbeCacheKey = "chain-probe#latest"

type ChainStatusSource interface {
	ChainID(ctx context.Context) (uint64, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// ChainProber checks that the RPC endpoint is reachable and serves the
// expected network. Results are kept in the local cache and fanned out to
// listeners such as the gRPC health server.
type ChainProber struct {
	source   ChainStatusSource
	marshal  *marshaler.Marshaler
	store    *localCache.Store
	expected uint64
	ttl      time.Duration

	Listeners []func(models.ChainProbe)
	Now       func() time.Time
}

func NewChainProber(source ChainStatusSource, cacheStore *localCache.Store, expected uint64, ttl time.Duration) *ChainProber {
	cacheManager := cache.New[any](cacheStore.S)
	return &ChainProber{
		source:   source,
		marshal:  marshaler.New(cacheManager),
		store:    cacheStore,
		expected: expected,
		ttl:      ttl,
		Now:      time.Now,
	}
}

func (v *ChainProber) Probe(ctx context.Context) models.ChainProbe {
	probe := models.ChainProbe{CheckedAt: v.Now()}

	chainId, err := v.source.ChainID(ctx)
	if err != nil {
		probe.Error = fmt.Sprintf("failed to read chain id: %v", err)
		return probe
	}
	probe.ChainID = chainId

	block, err := v.source.BlockNumber(ctx)
	if err != nil {
		probe.Error = fmt.Sprintf("failed to read block number: %v", err)
		return probe
	}
	probe.BlockNumber = block

	if chainId != v.expected {
		probe.Error = fmt.Sprintf("rpc endpoint serves chain %d, expected %d", chainId, v.expected)
		return probe
	}

	probe.OK = true
	return probe
}

// DoChainProbeTask runs one probe and records it, used as the cron job.
func (v *ChainProber) DoChainProbeTask() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	probe := v.Probe(ctx)
	if probe.OK {
		log.Debug().Uint64("chain", probe.ChainID).Uint64("block", probe.BlockNumber).Msg("Chain probe succeeded.")
	} else {
		log.Warn().Str("error", probe.Error).Msg("Chain probe failed...")
	}

	if err := v.marshal.Set(
		ctx,
		chainProbeCacheKey,
		probe,
		store.WithExpiration(v.ttl),
		store.WithTags([]string{"chain-probe"}),
	); err != nil {
		log.Error().Err(err).Msg("Failed to save chain probe result...")
	} else {
		v.store.Wait()
	}

	for _, listener := range v.Listeners {
		listener(probe)
	}
}

// LastProbe returns the most recent probe that has not expired yet.
func (v *ChainProber) LastProbe(ctx context.Context) (models.ChainProbe, bool) {
	result, err := v.marshal.Get(ctx, chainProbeCacheKey, new(models.ChainProbe))
	if err != nil {
		return models.ChainProbe{}, false
	}
	return *result.(*models.ChainProbe), true
}
