package constants

const (
	// Upper bound enforced by InteractionService on comment content,
	// counted in runes.
	MaxCommentLength = 500

	DefaultPerPage = 10

	UserTableName          = "users"
	VideoTableName         = "videos"
	VideoReactionTableName = "video_reactions"
	VideoCommentTableName  = "video_comments"

	FriendRequestTableName     = "friend_requests"
	FriendshipTableName        = "friendships"
	PrivateMessageTableName    = "private_messages"
	NotificationTokenTableName = "notification_tokens"
)
