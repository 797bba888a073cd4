package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/itsharenotes/signup/internal/domain"
)

// AccountRepo provides typed DynamoDB operations for the accounts table.
// PK: identifier. Create is conditional, so the table itself enforces
// one account per identifier.
type AccountRepo struct {
	client    itemAPI
	tableName string
}

func NewAccountRepo(client itemAPI, tableName string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName}
}

func (r *AccountRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldIdentifier, identifier),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	cond, names := notExists(fieldIdentifier)
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String(cond),
		ExpressionAttributeNames: names,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("account %s exists: %w", a.Identifier, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("put account: %w", err)
	}
	return nil
}
