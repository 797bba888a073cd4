package dynamo

// DynamoDB attribute names used in keys and condition expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldIdentifier = "identifier"
	fieldExpiresAt  = "expires_at"
)
