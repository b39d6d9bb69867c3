package request

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/features/chain"
)

// Escalation rules, implemented once: advance-or-finalize on approval, skip to
// terminal on rejection, cancel only from approved. The state machine never
// re-derives chain depth ad hoc.

// EligibleAt returns the resolved approvers for the given rank, or nil when
// the rank is not part of the chain.
func EligibleAt(resolved []chain.RankApprovers, rank int) *chain.RankApprovers {
	for i := range resolved {
		if resolved[i].Rank == rank {
			return &resolved[i]
		}
	}
	return nil
}

// NextOnApprove returns the status and outstanding rank after consumedRank is
// approved. When no higher rank is configured the request finalizes as
// approved; otherwise it moves to the next configured rank in ascending order
// with the stage status counting approvals granted so far.
func NextOnApprove(resolved []chain.RankApprovers, consumedRank int) (Status, int) {
	granted := 0
	nextRank := -1
	for _, r := range resolved {
		if r.Rank <= consumedRank {
			granted++
			continue
		}
		if nextRank == -1 || r.Rank < nextRank {
			nextRank = r.Rank
		}
	}

	if nextRank == -1 {
		return StatusApproved, consumedRank
	}
	return StageStatus(granted), nextRank
}

// CanReject reports whether rejection is legal: any non-terminal state, and
// rejection at any level is final.
func CanReject(current Status) bool {
	return !current.Terminal()
}

// CanCancel reports whether administrative cancellation is legal. Only an
// already-approved request can be cancelled.
func CanCancel(current Status) bool {
	return current == StatusApproved
}
