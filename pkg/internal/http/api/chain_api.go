package api

import (
	"context"

	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/chain"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func getHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (v *Handler) getChain(c *fiber.Ctx) error {
	resp := fiber.Map{
		"chain":    chain.CronosTestnet(v.Config.RpcURL),
		"contract": v.Config.ContractAddress,
	}
	if v.Prober != nil {
		if probe, ok := v.Prober.LastProbe(c.Context()); ok {
			resp["probe"] = probe
		}
	}
	return c.JSON(resp)
}

func (v *Handler) getContract(c *fiber.Ctx) error {
	contract := exts.ResolveContract(c, v.Config.ContractAddress)
	if len(contract) == 0 {
		return exts.MissingContract(c)
	}

	owner, err := v.Reader.GetOwner(context.Background(), contract)
	if err != nil {
		readFailure(err, contract).Msg("Unable to read contract owner...")
		return exts.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to read contract", err)
	}

	return c.JSON(fiber.Map{
		"address": contract,
		"owner":   owner,
		"chainId": chain.CronosTestnetID,
	})
}
