// Package authz is the single decision point for content visibility and
// mutation rights. It is a pure predicate over snapshots of the entities
// involved: callers load the target's owner, the owning profile's status
// and the requester's follower membership, ask for a decision, and only
// then touch storage.
package authz

type Action string

const (
	ActionView     Action = "view"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionLike     Action = "like"
	ActionMessage  Action = "message"
	ActionFollow   Action = "follow"
	ActionUnfollow Action = "unfollow"
)

type Reason string

const (
	ReasonNotOwner         Reason = "not-owner"
	ReasonPrivateNoFollow  Reason = "private-no-follow"
	ReasonSelfAction       Reason = "self-action"
	ReasonAlreadyFollowing Reason = "already-following"
	ReasonNotFollowing     Reason = "not-following"
	ReasonAnonymous        Reason = "anonymous"
)

// Requester identifies who is asking. ID 0 is the anonymous marker.
type Requester struct {
	ID      int64
	IsStaff bool
}

func (r Requester) Anonymous() bool {
	return r.ID == 0
}

// Target is an immutable snapshot of the entity being acted on, together
// with the ownership context needed for a decision.
type Target struct {
	// OwnerID is the account that owns the entity. For a follow or
	// message target it is the target profile's account.
	OwnerID int64
	// ProfileOpen is the owning profile's visibility mode.
	ProfileOpen bool
	// RequesterFollows reports whether the requester is present in the
	// owning profile's follower set.
	RequesterFollows bool
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(r Reason) Decision {
	return Decision{Reason: r}
}

// Authorize evaluates the decision rules in precedence order; the first
// match wins. It never errors: every input maps to Allow or to Deny with
// a reason tag.
func Authorize(req Requester, action Action, tgt Target) Decision {
	// Self-directed follow and message are never allowed, staff included.
	if !req.Anonymous() && req.ID == tgt.OwnerID {
		switch action {
		case ActionFollow, ActionUnfollow, ActionMessage:
			return deny(ReasonSelfAction)
		}
	}

	if req.IsStaff {
		return allow
	}

	switch action {
	case ActionFollow:
		if req.Anonymous() {
			return deny(ReasonAnonymous)
		}
		if tgt.RequesterFollows {
			return deny(ReasonAlreadyFollowing)
		}
		return allow
	case ActionUnfollow:
		if req.Anonymous() {
			return deny(ReasonAnonymous)
		}
		if !tgt.RequesterFollows {
			return deny(ReasonNotFollowing)
		}
		return allow
	}

	if !req.Anonymous() && req.ID == tgt.OwnerID {
		return allow
	}

	switch action {
	case ActionUpdate, ActionDelete:
		// Ownership is the only path to mutation.
		return deny(ReasonNotOwner)
	case ActionCreate:
		if req.Anonymous() {
			return deny(ReasonAnonymous)
		}
		return allow
	case ActionView:
		if tgt.ProfileOpen {
			return allow
		}
		if req.Anonymous() {
			return deny(ReasonPrivateNoFollow)
		}
		if tgt.RequesterFollows {
			return allow
		}
		return deny(ReasonPrivateNoFollow)
	case ActionLike, ActionMessage:
		if req.Anonymous() {
			return deny(ReasonAnonymous)
		}
		if tgt.ProfileOpen || tgt.RequesterFollows {
			return allow
		}
		return deny(ReasonPrivateNoFollow)
	}

	return deny(ReasonNotOwner)
}
