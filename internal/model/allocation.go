package model

import "strings"

// Channel is an advertising platform receiving budget
type Channel string

const (
	ChannelFacebook Channel = "Facebook"
	ChannelGoogle   Channel = "Google"
	ChannelTikTok   Channel = "TikTok"
)

// Role is the job a channel plays in the media mix
type Role string

const (
	RoleHero    Role = "Hero"
	RoleSupport Role = "Support"
	RoleTest    Role = "Test"
)

// ChannelAllocation is one channel's share of the budget
type ChannelAllocation struct {
	Channel    Channel `json:"channel" bson:"channel" yaml:"channel"`
	Percentage int     `json:"percentage" bson:"percentage" yaml:"percentage"`
	Role       Role    `json:"role" bson:"role" yaml:"role"`
}

// Reasoning is one entry of the justification trail
type Reasoning struct {
	Trigger string `json:"trigger" bson:"trigger"`
	Message string `json:"message" bson:"message"`
}

// Find returns the allocation for a channel, case-insensitively
func Find(allocs []ChannelAllocation, ch Channel) (ChannelAllocation, bool) {
	for _, a := range allocs {
		if strings.EqualFold(string(a.Channel), string(ch)) {
			return a, true
		}
	}
	return ChannelAllocation{}, false
}

// WithRole returns the first allocation holding the role
func WithRole(allocs []ChannelAllocation, role Role) (ChannelAllocation, bool) {
	for _, a := range allocs {
		if a.Role == role {
			return a, true
		}
	}
	return ChannelAllocation{}, false
}
