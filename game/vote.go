package game

// ballot is a voter's standing choice. seq orders ballots by the moment they
// were cast, a re-vote gets a fresh seq.
type ballot struct {
	target string
	seq    uint64
}

// VoteTally collects one vote per voter and resolves them by plurality.
//
// Ties are broken by the earliest standing vote: among the targets sharing the
// highest count wins the one whose oldest still-valid ballot was cast first.
// Votes that were overwritten no longer count toward that order.
type VoteTally struct {
	ballots map[string]ballot
	seq     uint64
}

func NewVoteTally() *VoteTally {
	return &VoteTally{ballots: make(map[string]ballot)}
}

// Record inserts or overwrites voterID's choice.
func (vt *VoteTally) Record(voterID, targetID string) {
	vt.seq++
	vt.ballots[voterID] = ballot{target: targetID, seq: vt.seq}
}

// Voted reports whether voterID has a standing vote.
func (vt *VoteTally) Voted(voterID string) bool {
	_, ok := vt.ballots[voterID]
	return ok
}

// Choice returns voterID's standing target.
func (vt *VoteTally) Choice(voterID string) (string, bool) {
	b, ok := vt.ballots[voterID]
	return b.target, ok
}

func (vt *VoteTally) Len() int {
	return len(vt.ballots)
}

// Counts returns the number of standing votes per target.
func (vt *VoteTally) Counts() map[string]int {
	counters := make(map[string]int)
	for _, b := range vt.ballots {
		counters[b.target]++
	}
	return counters
}

// Resolve returns the plurality target, false if nobody has voted.
func (vt *VoteTally) Resolve() (string, bool) {
	if len(vt.ballots) == 0 {
		return "", false
	}

	counters := make(map[string]int)
	earliest := make(map[string]uint64)
	for _, b := range vt.ballots {
		counters[b.target]++
		if s, ok := earliest[b.target]; !ok || b.seq < s {
			earliest[b.target] = b.seq
		}
	}

	finalVote := ""
	greaterCntr := 0
	for target, cntr := range counters {
		switch {
		case cntr > greaterCntr:
		case cntr == greaterCntr && earliest[target] < earliest[finalVote]:
		default:
			continue
		}
		finalVote = target
		greaterCntr = cntr
	}

	return finalVote, true
}

// Reset drops every vote.
func (vt *VoteTally) Reset() {
	vt.ballots = make(map[string]ballot)
	vt.seq = 0
}
