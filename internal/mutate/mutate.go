// ABOUTME: Optimistic mutation helper with exact rollback
// ABOUTME: Predicts outcomes locally, then reconciles with the server's answer

package mutate

import "github.com/promptlib/promptdeck/internal/client"

// Mutation captures the state before an optimistic update so a failed
// request can restore it exactly. The server response, not the
// prediction, is always the authoritative final value.
type Mutation[T any] struct {
	previous  T
	predicted T
}

// Begin snapshots the current value and computes the predicted one
func Begin[T any](current T, predict func(T) T) Mutation[T] {
	return Mutation[T]{
		previous:  current,
		predicted: predict(current),
	}
}

// Predicted is the value to show while the request is in flight
func (m Mutation[T]) Predicted() T {
	return m.predicted
}

// Reconcile replaces the prediction with the server's value
func (m Mutation[T]) Reconcile(server T) T {
	return server
}

// Rollback restores the exact pre-mutation value
func (m Mutation[T]) Rollback() T {
	return m.previous
}

// ApplyVote returns the predictor for casting a vote of the given
// value (+1 or -1). Voting is a toggle: repeating the same vote
// retracts it, voting the other way flips it.
func ApplyVote(value int) func(client.Prompt) client.Prompt {
	return func(p client.Prompt) client.Prompt {
		switch {
		case p.UserVote == value:
			// retract
			p.UserVote = 0
			p.VoteCount -= value
			if value > 0 {
				p.LikeCount--
			} else {
				p.DislikeCount--
			}
		case p.UserVote == -value && p.UserVote != 0:
			// flip
			p.UserVote = value
			p.VoteCount += 2 * value
			if value > 0 {
				p.LikeCount++
				p.DislikeCount--
			} else {
				p.DislikeCount++
				p.LikeCount--
			}
		default:
			// set from neutral
			p.UserVote = value
			p.VoteCount += value
			if value > 0 {
				p.LikeCount++
			} else {
				p.DislikeCount++
			}
		}
		return p
	}
}

// ToggleBookmark predicts the bookmark flag flipping
func ToggleBookmark(p client.Prompt) client.Prompt {
	p.IsBookmarked = !p.IsBookmarked
	return p
}

// ApplyVersion returns the predictor for reverting to a prior version:
// the version's content replaces the prompt's, everything else (votes,
// bookmark, status) stays as is until the server answers.
func ApplyVersion(v client.PromptVersion) func(client.Prompt) client.Prompt {
	return func(p client.Prompt) client.Prompt {
		p.Title = v.Title
		p.Description = v.Description
		p.Text = v.Text
		p.Guidance = v.Guidance
		p.TaskType = v.TaskType
		p.OutputFormat = v.OutputFormat
		p.Category = v.Category
		return p
	}
}

// MarkPendingDeletion predicts the status after a deletion request
func MarkPendingDeletion(p client.Prompt) client.Prompt {
	p.Status = client.StatusPendingDeletion
	return p
}

// MarkApproved predicts the status after moderator approval
func MarkApproved(p client.Prompt) client.Prompt {
	p.Status = client.StatusApproved
	return p
}

// MarkRejected predicts the status after moderator rejection
func MarkRejected(p client.Prompt) client.Prompt {
	p.Status = client.StatusRejected
	return p
}
