package delegation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delegation is a time-bounded grant letting the delegate act wherever the
// delegator could act. Active iff now falls within [valid_from, valid_to);
// activeness is re-evaluated on every approval action, never cached.
// Rows are never mutated in place: revocation closes the window.
type Delegation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DelegatorID string             `bson:"delegator_id" json:"delegator_id"`
	DelegateID  string             `bson:"delegate_id" json:"delegate_id"`
	ValidFrom   time.Time          `bson:"valid_from" json:"valid_from"`
	ValidTo     time.Time          `bson:"valid_to" json:"valid_to"`

	// ScopeRank limits the grant to one rank; nil means every rank the
	// delegator holds.
	ScopeRank *int `bson:"scope_rank,omitempty" json:"scope_rank,omitempty"`

	Reason    string     `bson:"reason,omitempty" json:"reason,omitempty"`
	RevokedAt *time.Time `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
	RevokedBy string     `bson:"revoked_by,omitempty" json:"revoked_by,omitempty"`

	// Expired is housekeeping set by the sweep job once the window is fully in
	// the past. Eligibility never consults it.
	Expired bool `bson:"expired,omitempty" json:"expired,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ActiveAt reports whether the grant covers the given instant and rank.
func (d *Delegation) ActiveAt(asOf time.Time, rank int) bool {
	if d.ScopeRank != nil && *d.ScopeRank != rank {
		return false
	}
	return !asOf.Before(d.ValidFrom) && asOf.Before(d.ValidTo)
}

type GrantInput struct {
	DelegatorID string    `json:"delegator_id"`
	DelegateID  string    `json:"delegate_id"`
	ValidFrom   time.Time `json:"valid_from"`
	ValidTo     time.Time `json:"valid_to"`
	ScopeRank   *int      `json:"scope_rank,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}
