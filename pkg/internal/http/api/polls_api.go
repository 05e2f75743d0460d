package api

import (
	"context"
	"errors"
	"strconv"

	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/chain"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/models"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// readFailure tags the log line with the contract call that failed.
func readFailure(err error, contract string) *zerolog.Event {
	var readErr *services.ChainReadError
	if errors.As(err, &readErr) {
		return log.Error().Err(err).Str("op", readErr.Op).Str("contract", readErr.Contract)
	}
	return log.Error().Err(err).Str("contract", contract)
}

// Reads run on a background context, a client hanging up does not cancel
// the calls already sent to the node.
func (v *Handler) listPolls(c *fiber.Ctx) error {
	contract := exts.ResolveContract(c, v.Config.ContractAddress)
	if len(contract) == 0 {
		log.Error().Msg("No contract address configured or supplied...")
		return exts.MissingContract(c)
	}

	log.Info().Str("contract", contract).Msg("Reading polls...")
	listing, err := v.Reader.ListPolls(context.Background(), contract)
	if err != nil {
		readFailure(err, contract).Msg("Unable to read polls...")
		return exts.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to read polls", err)
	}

	return c.JSON(fiber.Map{
		"total":   listing.Total,
		"polls":   listing.Polls,
		"chainId": chain.CronosTestnetID,
		"rpcUrl":  v.Config.RpcURL,
	})
}

func (v *Handler) getPoll(c *fiber.Ctx) error {
	contract := exts.ResolveContract(c, v.Config.ContractAddress)
	if len(contract) == 0 {
		return exts.MissingContract(c)
	}

	pollId, err := strconv.ParseUint(c.Params("pollId"), 10, 64)
	if err != nil {
		return exts.ErrorResponse(c, fiber.StatusBadRequest, "Invalid poll id", err)
	}

	log.Info().Str("contract", contract).Uint64("poll", pollId).Msg("Reading poll...")
	poll, err := v.Reader.GetPoll(context.Background(), contract, pollId)
	if err != nil {
		readFailure(err, contract).Uint64("poll", pollId).Msg("Unable to read poll...")
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			return exts.ErrorResponse(c, fiber.StatusNotFound, "Poll not found", err)
		}
		return exts.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to read poll", err)
	}

	return c.JSON(poll)
}

func (v *Handler) getPollVoter(c *fiber.Ctx) error {
	contract := exts.ResolveContract(c, v.Config.ContractAddress)
	if len(contract) == 0 {
		return exts.MissingContract(c)
	}

	pollId, err := strconv.ParseUint(c.Params("pollId"), 10, 64)
	if err != nil {
		return exts.ErrorResponse(c, fiber.StatusBadRequest, "Invalid poll id", err)
	}
	voter := c.Params("voter")
	if err := exts.ValidateAddress(voter); err != nil {
		return exts.ErrorResponse(c, fiber.StatusBadRequest, "Invalid voter address", err)
	}

	voted, err := v.Reader.HasVoted(context.Background(), contract, pollId, voter)
	if err != nil {
		readFailure(err, contract).Uint64("poll", pollId).Msg("Unable to read voter status...")
		return exts.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to read voter status", err)
	}

	return c.JSON(models.PollVoterStatus{
		PollID: pollId,
		Voter:  voter,
		Voted:  voted,
	})
}
