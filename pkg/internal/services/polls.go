package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/chain"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// PollSource is the chain-read capability the reader is built on.
// *chain.Client implements it.
type PollSource interface {
	TotalPolls(ctx context.Context, contract string) (uint64, error)
	GetPoll(ctx context.Context, contract string, id uint64) (chain.RawPoll, error)
	HasAddressVoted(ctx context.Context, contract string, id uint64, voter string) (bool, error)
	Owner(ctx context.Context, contract string) (string, error)
}

// MaxListedPolls caps how many polls a single listing will fan out to. A
// contract reporting more is treated as a bad read.
const MaxListedPolls = 1 << 16

type ChainReadError struct {
	Op       string
	Contract string
	Err      error
}

func (e *ChainReadError) Error() string {
	return e.Err.Error()
}

func (e *ChainReadError) Unwrap() error { return e.Err }

// NotFoundError is reported when the contract rejects a poll id.
type NotFoundError struct {
	PollID uint64
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("poll %d not found: %v", e.PollID, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

type PollReader struct {
	source PollSource

	// MaxConcurrentReads bounds the ListPolls fan-out, zero means unbounded.
	MaxConcurrentReads int
	Now                func() time.Time
}

func NewPollReader(source PollSource) *PollReader {
	return &PollReader{source: source, Now: time.Now}
}

// DerivePollState classifies a poll for display. The checks run in a fixed
// order and the first match wins. A zero EndTime never ends the poll.
func DerivePollState(poll models.Poll, now int64) models.PollState {
	switch {
	case !poll.Active:
		return models.PollStateClosed
	case now < 0 || uint64(now) < poll.StartTime:
		return models.PollStateScheduled
	case poll.EndTime != 0 && uint64(now) > poll.EndTime:
		return models.PollStateEnded
	default:
		return models.PollStateLive
	}
}

func (v *PollReader) GetTotalPolls(ctx context.Context, contract string) (uint64, error) {
	total, err := v.source.TotalPolls(ctx, contract)
	if err != nil {
		return 0, &ChainReadError{Op: chain.MethodTotalPolls, Contract: contract, Err: err}
	}
	return total, nil
}

func (v *PollReader) GetPoll(ctx context.Context, contract string, id uint64) (models.Poll, error) {
	raw, err := v.source.GetPoll(ctx, contract, id)
	if err != nil {
		if errors.Is(err, chain.ErrReverted) {
			return models.Poll{}, &NotFoundError{PollID: id, Err: err}
		}
		return models.Poll{}, &ChainReadError{Op: chain.MethodGetPoll, Contract: contract, Err: err}
	}

	votes := make([]uint64, len(raw.Votes))
	for idx, vote := range raw.Votes {
		if vote == nil || !vote.IsUint64() {
			return models.Poll{}, &ChainReadError{
				Op:       chain.MethodGetPoll,
				Contract: contract,
				Err:      fmt.Errorf("vote count of option %d in poll %d is out of range", idx, id),
			}
		}
		votes[idx] = vote.Uint64()
	}

	poll := models.Poll{
		ID:          id,
		Title:       raw.Title,
		Description: raw.Description,
		Options:     raw.Options,
		Votes:       votes,
		StartTime:   raw.StartTime,
		EndTime:     raw.EndTime,
		Active:      raw.Active,
		Creator:     raw.Creator.Hex(),
	}
	poll.State = DerivePollState(poll, v.Now().Unix())

	return poll, nil
}

// ListPolls reads every poll concurrently. Any failing read fails the whole
// listing, nothing partial is returned.
func (v *PollReader) ListPolls(ctx context.Context, contract string) (models.PollListing, error) {
	total, err := v.GetTotalPolls(ctx, contract)
	if err != nil {
		return models.PollListing{}, err
	}

	if total > MaxListedPolls {
		return models.PollListing{}, &ChainReadError{
			Op:       chain.MethodTotalPolls,
			Contract: contract,
			Err:      fmt.Errorf("contract reports %d polls, more than %d can be listed", total, MaxListedPolls),
		}
	}

	log.Debug().Str("contract", contract).Uint64("total", total).Msg("Reading polls...")

	// Each read owns one slot so the result stays in ascending id order
	// whatever order the reads complete in.
	polls := make([]models.Poll, total)
	g, gctx := errgroup.WithContext(ctx)
	if v.MaxConcurrentReads > 0 {
		g.SetLimit(v.MaxConcurrentReads)
	}
	for _, idx := range lo.Range(int(total)) {
		g.Go(func() error {
			poll, err := v.GetPoll(gctx, contract, uint64(idx))
			if err != nil {
				return err
			}
			polls[idx] = poll
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var readErr *ChainReadError
		if errors.As(err, &readErr) {
			return models.PollListing{}, readErr
		}
		return models.PollListing{}, &ChainReadError{Op: chain.MethodGetPoll, Contract: contract, Err: err}
	}

	return models.PollListing{Total: total, Polls: polls}, nil
}

func (v *PollReader) HasVoted(ctx context.Context, contract string, id uint64, voter string) (bool, error) {
	voted, err := v.source.HasAddressVoted(ctx, contract, id, voter)
	if err != nil {
		return false, &ChainReadError{Op: chain.MethodHasAddressVoted, Contract: contract, Err: err}
	}
	return voted, nil
}

func (v *PollReader) GetOwner(ctx context.Context, contract string) (string, error) {
	owner, err := v.source.Owner(ctx, contract)
	if err != nil {
		return "", &ChainReadError{Op: chain.MethodOwner, Contract: contract, Err: err}
	}
	return owner, nil
}
