package models

import "time"

// Client represents an authenticated board client
type Client struct {
	// From JWT claims
	ID          string `json:"id"`          // Converted from int64 user_id
	Username    string `json:"username"`    // JWT claim
	Permissions int64  `json:"permissions"` // JWT claim: bitwise permission flags
	Activated   int64  `json:"activated"`   // JWT claim: activation timestamp or ban status

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`

	// Session state
	SessionID string `json:"session_id"`
}

// IsActive checks if the account is activated and not banned
func (c *Client) IsActive() bool {
	// activated > 0 means activated
	// activated == 0 means not activated
	// activated == -1 means banned
	return c.Activated > 0
}

// IsBanned checks if the client is banned
func (c *Client) IsBanned() bool {
	return c.Activated == -1
}
