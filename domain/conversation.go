package domain

import "time"

// ConversationSummary is the single recency entry kept per partner.
// Each new message, sent or received, overwrites the entry for that partner.
type ConversationSummary struct {
	PartnerID     string    `json:"partnerId"`
	PartnerName   string    `json:"partnerName"`
	LastMessage   string    `json:"lastMessage"`
	LastTimestamp time.Time `json:"lastTimestamp"`
}

// UnreadBucket counts messages from one partner not yet viewed locally.
// Buckets are deleted wholesale when the conversation is opened, never
// decremented.
type UnreadBucket struct {
	PartnerID     string    `json:"partnerId"`
	Count         int       `json:"count"`
	LastMessage   string    `json:"lastMessage"`
	PartnerName   string    `json:"partnerName"`
	LastTimestamp time.Time `json:"lastTimestamp"`
}

// User is a directory entry used by the new-conversation picker.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}
