package domain

import "time"

// Account is a registered principal. Identifier is the natural key.
type Account struct {
	AccountID    string    `json:"id" dynamodbav:"account_id"`
	Identifier   string    `json:"identifier" dynamodbav:"identifier"`
	Kind         Kind      `json:"kind" dynamodbav:"kind"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}
