package models

type PollState = string

const (
	PollStateClosed    = PollState("closed")
	PollStateScheduled = PollState("scheduled")
	PollStateEnded     = PollState("ended")
	PollStateLive      = PollState("live")
)

// Poll is a read-only projection of a poll stored in the voting contract.
// It is rebuilt on every read, State included.
type Poll struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Votes       []uint64 `json:"votes"`
	StartTime   uint64   `json:"startTime"`
	EndTime     uint64   `json:"endTime"`
	Active      bool     `json:"active"`
	Creator     string   `json:"creator"`

	State PollState `json:"state"`
}

type PollListing struct {
	Total uint64 `json:"total"`
	Polls []Poll `json:"polls"`
}

type PollVoterStatus struct {
	PollID uint64 `json:"pollId"`
	Voter  string `json:"voter"`
	Voted  bool   `json:"voted"`
}
