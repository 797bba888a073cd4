package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/itsharenotes/signup/internal/config"
)

// schemaAPI is the subset of *dynamodb.Client used to manage tables.
type schemaAPI interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	UpdateTimeToLive(ctx context.Context, in *dynamodb.UpdateTimeToLiveInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error)
}

// Bootstrap creates the accounts and activation token tables if they don't
// already exist, and enables TTL on activation tokens.
// Tables that already exist are skipped, so this runs on every startup.
func Bootstrap(ctx context.Context, client schemaAPI, tables config.DynamoTables) error {
	var errs []error

	errs = append(errs, createTable(ctx, client, identifierTable(tables.Accounts)))
	errs = append(errs, createTable(ctx, client, identifierTable(tables.ActivationTokens)))
	enableTTL(ctx, client, tables.ActivationTokens, fieldExpiresAt)

	return errors.Join(errs...)
}

// identifierTable describes a pay-per-request table keyed by identifier only.
func identifierTable(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(fieldIdentifier), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(fieldIdentifier), KeyType: types.KeyTypeHash},
		},
	}
}

func createTable(ctx context.Context, client schemaAPI, input *dynamodb.CreateTableInput) error {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException: the table already exists.
		var riue *types.ResourceInUseException
		if errors.As(err, &riue) {
			return nil
		}
		slog.Warn("could not create table", "table", *input.TableName, "err", err)
		return fmt.Errorf("create table %s: %w", *input.TableName, err)
	}
	slog.Info("created table", "table", *input.TableName)
	return nil
}

func enableTTL(ctx context.Context, client schemaAPI, tableName, ttlAttr string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(tableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(ttlAttr),
		},
	})
	if err != nil {
		// Re-enabling TTL on a table that already has it is rejected; not fatal.
		slog.Warn("could not enable TTL", "table", tableName, "err", err)
	}
}
