package subscription

import "vidtube/internal/domain"

// ChannelSummary is the public slice of a user shown in subscriber and
// subscription listings.
type ChannelSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

func NewChannelSummary(u *domain.User) ChannelSummary {
	return ChannelSummary{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

func NewChannelSummaries(users []*domain.User) []ChannelSummary {
	summaries := make([]ChannelSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, NewChannelSummary(u))
	}
	return summaries
}
