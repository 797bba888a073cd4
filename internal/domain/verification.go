package domain

import "time"

// ActivationToken is the single live code for an identifier.
// PK: identifier. ExpiresAt is stored as Unix seconds and doubles as the DynamoDB TTL.
type ActivationToken struct {
	Identifier string    `json:"identifier" dynamodbav:"identifier"`
	Kind       Kind      `json:"kind" dynamodbav:"kind"`
	Code       string    `json:"-" dynamodbav:"code"`
	ExpiresAt  time.Time `json:"expires_at" dynamodbav:"expires_at,unixtime"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Expired reports whether the token is no longer usable at now.
// A token whose expiry equals now is expired.
func (t *ActivationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Remaining is the validity left at now, never negative.
func (t *ActivationToken) Remaining(now time.Time) time.Duration {
	if d := t.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
