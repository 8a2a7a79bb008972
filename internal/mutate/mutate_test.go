// ABOUTME: Tests for optimistic mutation predictions and rollback
// ABOUTME: Covers the vote transition table and reconcile semantics

package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptlib/promptdeck/internal/client"
)

func TestApplyVote_Transitions(t *testing.T) {
	tests := []struct {
		name          string
		userVote      int
		voteValue     int
		wantUserVote  int
		wantVoteDelta int
	}{
		{"set upvote from neutral", 0, 1, 1, 1},
		{"set downvote from neutral", 0, -1, -1, -1},
		{"retract upvote", 1, 1, 0, -1},
		{"retract downvote", -1, -1, 0, 1},
		{"flip up to down", 1, -1, -1, -2},
		{"flip down to up", -1, 1, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := client.Prompt{ID: 1, VoteCount: 5, UserVote: tt.userVote, LikeCount: 7, DislikeCount: 2}
			after := ApplyVote(tt.voteValue)(before)

			assert.Equal(t, tt.wantUserVote, after.UserVote)
			assert.Equal(t, before.VoteCount+tt.wantVoteDelta, after.VoteCount)
			// like minus dislike moves with the vote count
			likeDelta := (after.LikeCount - before.LikeCount) - (after.DislikeCount - before.DislikeCount)
			assert.Equal(t, tt.wantVoteDelta, likeDelta)
		})
	}
}

func TestApplyVote_DoubleToggleRestoresOriginal(t *testing.T) {
	original := client.Prompt{ID: 1, VoteCount: 3, UserVote: 0, LikeCount: 4, DislikeCount: 1}

	once := ApplyVote(1)(original)
	twice := ApplyVote(1)(once)

	assert.Equal(t, original, twice)
}

func TestMutation_RollbackIsExact(t *testing.T) {
	original := client.Prompt{ID: 7, Status: client.StatusApproved, VoteCount: 9, UserVote: 1, IsBookmarked: true}

	m := Begin(original, MarkPendingDeletion)

	assert.Equal(t, client.StatusPendingDeletion, m.Predicted().Status)
	assert.Equal(t, original, m.Rollback())
}

func TestMutation_ReconcilePrefersServerValue(t *testing.T) {
	original := client.Prompt{ID: 7, VoteCount: 9, UserVote: 0}
	m := Begin(original, ApplyVote(1))

	// The server counted another user's concurrent vote
	server := client.Prompt{ID: 7, VoteCount: 11, UserVote: 1}
	assert.Equal(t, server, m.Reconcile(server))
}

func TestToggleBookmark(t *testing.T) {
	p := client.Prompt{ID: 42}

	on := ToggleBookmark(p)
	assert.True(t, on.IsBookmarked)

	off := ToggleBookmark(on)
	assert.False(t, off.IsBookmarked)
}

func TestApplyVersion_ReplacesContentOnly(t *testing.T) {
	p := client.Prompt{
		ID:           7,
		Title:        "Current title",
		Text:         "current text",
		Category:     "sales",
		Status:       client.StatusApproved,
		VoteCount:    9,
		IsBookmarked: true,
	}
	v := client.PromptVersion{
		ID:       12,
		PromptID: 7,
		Title:    "Older title",
		Text:     "older text",
		Guidance: "older guidance",
		Category: "marketing",
	}

	after := ApplyVersion(v)(p)

	assert.Equal(t, "Older title", after.Title)
	assert.Equal(t, "older text", after.Text)
	assert.Equal(t, "older guidance", after.Guidance)
	assert.Equal(t, "marketing", after.Category)
	// Votes, bookmark, and status are not part of a version
	assert.Equal(t, 9, after.VoteCount)
	assert.True(t, after.IsBookmarked)
	assert.Equal(t, client.StatusApproved, after.Status)
}

func TestStatusPredictors(t *testing.T) {
	p := client.Prompt{ID: 1, Status: client.StatusPending}

	assert.Equal(t, client.StatusApproved, MarkApproved(p).Status)
	assert.Equal(t, client.StatusRejected, MarkRejected(p).Status)
	assert.Equal(t, client.StatusPendingDeletion, MarkPendingDeletion(p).Status)
}

func TestGuard_BlocksOverlappingMutations(t *testing.T) {
	g := NewGuard()

	assert.True(t, g.Begin(1))
	assert.False(t, g.Begin(1), "second mutation on same record must be dropped")
	assert.True(t, g.Begin(2), "other records are unaffected")
	assert.True(t, g.Busy(1))

	g.End(1)
	assert.False(t, g.Busy(1))
	assert.True(t, g.Begin(1))
}
