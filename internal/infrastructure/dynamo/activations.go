package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/itsharenotes/signup/internal/domain"
)

// ActivationRepo manages the live activation token of each identifier.
// PK: identifier. expires_at is the table TTL attribute; DynamoDB removes
// stale items eventually, so reads still check expiry themselves.
type ActivationRepo struct {
	client    itemAPI
	tableName string
}

func NewActivationRepo(client itemAPI, tableName string) *ActivationRepo {
	return &ActivationRepo{client: client, tableName: tableName}
}

// Put inserts or replaces the token for t.Identifier.
func (r *ActivationRepo) Put(ctx context.Context, t *domain.ActivationToken) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal activation token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put activation token: %w", err)
	}
	return nil
}

func (r *ActivationRepo) Get(ctx context.Context, identifier string) (*domain.ActivationToken, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldIdentifier, identifier),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get activation token: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("activation token not found: %w", domain.ErrNotFound)
	}
	var t domain.ActivationToken
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, fmt.Errorf("unmarshal activation token: %w", err)
	}
	return &t, nil
}

func (r *ActivationRepo) Delete(ctx context.Context, identifier string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldIdentifier, identifier),
	})
	if err != nil {
		return fmt.Errorf("delete activation token: %w", err)
	}
	return nil
}
