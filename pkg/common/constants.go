package common

const (
	// Remote store resources.
	RemoteKeyLikes    = "likes"
	RemoteKeyComments = "comments"

	// Local store keys.
	LocalKeyLikes    = "stockLikes"
	LocalKeyComments = "stockComments"
	LocalKeyUserName = "userName"

	RemoteChangeChannelSuffix = "changes"

	DefaultUserName = "匿名ユーザー"

	BrowserUserAgent = "Mozilla/5.0"
)
