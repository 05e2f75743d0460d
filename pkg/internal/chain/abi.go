package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Read-only view of the voting contract. The write methods (vote,
// createPoll) are signed and sent by the web client, not by this service.
const votingABI = `[
	{"type":"function","name":"totalPolls","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getPoll","stateMutability":"view",
		"inputs":[{"name":"pollId","type":"uint256"}],
		"outputs":[
			{"name":"title","type":"string"},
			{"name":"description","type":"string"},
			{"name":"options","type":"string[]"},
			{"name":"votes","type":"uint256[]"},
			{"name":"startTime","type":"uint64"},
			{"name":"endTime","type":"uint64"},
			{"name":"active","type":"bool"},
			{"name":"creator","type":"address"}
		]},
	{"type":"function","name":"hasAddressVoted","stateMutability":"view",
		"inputs":[{"name":"pollId","type":"uint256"},{"name":"voter","type":"address"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const (
	MethodTotalPolls      = "totalPolls"
	MethodGetPoll         = "getPoll"
	MethodHasAddressVoted = "hasAddressVoted"
	MethodOwner           = "owner"
)

// VotingABI returns the parsed contract interface.
func VotingABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(votingABI))
}
