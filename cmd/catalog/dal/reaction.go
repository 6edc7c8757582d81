package dal

import "cliptube/pkg/errno"

// Reaction is the closed set of per-reactor states a video can carry.
// The zero value means "no reaction" and is never stored.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionLike
	ReactionDislike
)

const (
	reactionLikeValue    = "like"
	reactionDislikeValue = "dislike"
)

func (r Reaction) String() string {
	switch r {
	case ReactionLike:
		return reactionLikeValue
	case ReactionDislike:
		return reactionDislikeValue
	default:
		return ""
	}
}

// ParseReaction converts the wire/storage form back to the enum.
func ParseReaction(value string) (Reaction, error) {
	switch value {
	case reactionLikeValue:
		return ReactionLike, nil
	case reactionDislikeValue:
		return ReactionDislike, nil
	default:
		return ReactionNone, errno.ParamErr.WithMessage("unknown reaction: " + value)
	}
}
