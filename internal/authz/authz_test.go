package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anon     = Requester{}
	staff    = Requester{ID: 99, IsStaff: true}
	owner    = Requester{ID: 1}
	follower = Requester{ID: 2}
	stranger = Requester{ID: 3}
)

func openContent() Target {
	return Target{OwnerID: 1, ProfileOpen: true}
}

func privateContent(requesterFollows bool) Target {
	return Target{OwnerID: 1, RequesterFollows: requesterFollows}
}

func TestStaffAlwaysAllowed(t *testing.T) {
	for _, action := range []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionLike} {
		d := Authorize(staff, action, privateContent(false))
		assert.True(t, d.Allowed, "staff should be allowed %s", action)
	}
}

func TestOwnerCanMutate(t *testing.T) {
	for _, action := range []Action{ActionView, ActionUpdate, ActionDelete} {
		d := Authorize(owner, action, privateContent(false))
		assert.True(t, d.Allowed, "owner should be allowed %s", action)
	}
}

func TestNonOwnerCannotMutate(t *testing.T) {
	for _, req := range []Requester{follower, stranger} {
		for _, action := range []Action{ActionUpdate, ActionDelete} {
			for _, tgt := range []Target{openContent(), privateContent(true)} {
				d := Authorize(req, action, tgt)
				assert.False(t, d.Allowed)
				assert.Equal(t, ReasonNotOwner, d.Reason)
			}
		}
	}
}

func TestOpenContentViewable(t *testing.T) {
	for _, req := range []Requester{anon, follower, stranger} {
		d := Authorize(req, ActionView, openContent())
		assert.True(t, d.Allowed)
	}
}

func TestOpenContentLikeRequiresAuth(t *testing.T) {
	d := Authorize(anon, ActionLike, openContent())
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAnonymous, d.Reason)

	d = Authorize(stranger, ActionLike, openContent())
	assert.True(t, d.Allowed)
}

func TestPrivateContentFollowerGate(t *testing.T) {
	d := Authorize(follower, ActionView, privateContent(true))
	assert.True(t, d.Allowed)

	d = Authorize(stranger, ActionView, privateContent(false))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonPrivateNoFollow, d.Reason)

	d = Authorize(anon, ActionView, privateContent(false))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonPrivateNoFollow, d.Reason)

	d = Authorize(follower, ActionLike, privateContent(true))
	assert.True(t, d.Allowed)

	d = Authorize(stranger, ActionMessage, privateContent(false))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonPrivateNoFollow, d.Reason)
}

func TestSelfMessageNeverAllowed(t *testing.T) {
	d := Authorize(owner, ActionMessage, openContent())
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSelfAction, d.Reason)

	// Even staff cannot message themselves.
	d = Authorize(staff, ActionMessage, Target{OwnerID: staff.ID, ProfileOpen: true})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSelfAction, d.Reason)
}

func TestSelfFollowNeverAllowed(t *testing.T) {
	d := Authorize(owner, ActionFollow, Target{OwnerID: owner.ID, ProfileOpen: true})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSelfAction, d.Reason)

	d = Authorize(staff, ActionFollow, Target{OwnerID: staff.ID, ProfileOpen: true})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSelfAction, d.Reason)
}

func TestDuplicateFollowRejected(t *testing.T) {
	d := Authorize(follower, ActionFollow, privateContent(true))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAlreadyFollowing, d.Reason)

	d = Authorize(stranger, ActionFollow, privateContent(false))
	assert.True(t, d.Allowed)
}

func TestUnfollowRequiresExistingFollow(t *testing.T) {
	d := Authorize(stranger, ActionUnfollow, privateContent(false))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotFollowing, d.Reason)

	d = Authorize(follower, ActionUnfollow, privateContent(true))
	assert.True(t, d.Allowed)
}

func TestAnonymousCannotCreateOrFollow(t *testing.T) {
	d := Authorize(anon, ActionCreate, Target{})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAnonymous, d.Reason)

	d = Authorize(anon, ActionFollow, openContent())
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAnonymous, d.Reason)
}
