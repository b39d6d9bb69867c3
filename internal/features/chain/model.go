package chain

// RankApprovers is one resolved level of an approval chain: the assigned
// manager plus every principal currently entitled to act for them.
type RankApprovers struct {
	Rank      int      `json:"rank"`
	ManagerID string   `json:"manager_id"`
	Eligible  []string `json:"eligible"`
}

// DelegatorOf returns the manager the actor would be representing at this
// rank, and whether the actor is eligible at all. The assigned manager acts
// for themselves.
func (r *RankApprovers) DelegatorOf(actorID string) (string, bool) {
	for _, p := range r.Eligible {
		if p != actorID {
			continue
		}
		if actorID == r.ManagerID {
			return "", true
		}
		return r.ManagerID, true
	}
	return "", false
}
