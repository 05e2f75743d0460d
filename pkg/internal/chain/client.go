package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrReverted       = errors.New("execution reverted")
)

// Backend is the part of an RPC client the voting contract reader needs.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractCaller
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// RawPoll mirrors the getPoll return tuple.
type RawPoll struct {
	Title       string
	Description string
	Options     []string
	Votes       []*big.Int
	StartTime   uint64
	EndTime     uint64
	Active      bool
	Creator     common.Address
}

// Client performs read calls against voting contracts. It holds no
// per-contract state and is safe for concurrent use.
type Client struct {
	backend Backend
	abi     abi.ABI
}

func NewClient(backend Backend) (*Client, error) {
	parsed, err := VotingABI()
	if err != nil {
		return nil, fmt.Errorf("failed to parse voting contract abi: %v", err)
	}
	return &Client{backend: backend, abi: parsed}, nil
}

func Dial(rpcURL string) (*Client, error) {
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc endpoint: %v", err)
	}
	return NewClient(ec)
}

func (c *Client) Close() {
	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
}

func (c *Client) TotalPolls(ctx context.Context, contract string) (uint64, error) {
	var total *big.Int
	if err := c.call(ctx, contract, MethodTotalPolls, &total); err != nil {
		return 0, err
	}
	if !total.IsUint64() {
		return 0, fmt.Errorf("total polls %s overflows uint64", total)
	}
	return total.Uint64(), nil
}

func (c *Client) GetPoll(ctx context.Context, contract string, id uint64) (RawPoll, error) {
	var poll RawPoll
	err := c.call(ctx, contract, MethodGetPoll, &poll, new(big.Int).SetUint64(id))
	return poll, err
}

func (c *Client) HasAddressVoted(ctx context.Context, contract string, id uint64, voter string) (bool, error) {
	if !common.IsHexAddress(voter) {
		return false, fmt.Errorf("%w: %q", ErrInvalidAddress, voter)
	}
	var voted bool
	err := c.call(ctx, contract, MethodHasAddressVoted, &voted, new(big.Int).SetUint64(id), common.HexToAddress(voter))
	return voted, err
}

func (c *Client) Owner(ctx context.Context, contract string) (string, error) {
	var owner common.Address
	if err := c.call(ctx, contract, MethodOwner, &owner); err != nil {
		return "", err
	}
	return owner.Hex(), nil
}

func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.backend.BlockNumber(ctx)
}

func (c *Client) call(ctx context.Context, contract string, method string, out any, args ...any) error {
	if !common.IsHexAddress(contract) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, contract)
	}
	to := common.HexToAddress(contract)

	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s call: %v", method, err)
	}

	log.Debug().Str("contract", to.Hex()).Str("method", method).Msg("Calling contract...")

	output, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		return classifyCallError(err)
	}
	if len(output) == 0 {
		// Empty output is either a missing contract or a broken node.
		if code, err := c.backend.CodeAt(ctx, to, nil); err != nil {
			return err
		} else if len(code) == 0 {
			return bind.ErrNoCode
		}
	}

	if err := c.abi.UnpackIntoInterface(out, method, output); err != nil {
		return fmt.Errorf("failed to unpack %s result: %v", method, err)
	}
	return nil
}

// revertError keeps the node's message intact and matches ErrReverted.
type revertError struct {
	reason string
	cause  error
}

func (e *revertError) Error() string {
	if len(e.reason) > 0 {
		return "execution reverted: " + e.reason
	}
	return e.cause.Error()
}

func (e *revertError) Is(target error) bool { return target == ErrReverted }

func (e *revertError) Unwrap() error { return e.cause }

func classifyCallError(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok && len(data) > 0 {
			reason, _ := abi.UnpackRevert(common.FromHex(data))
			return &revertError{reason: reason, cause: err}
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "revert") {
		return &revertError{cause: err}
	}
	return err
}
