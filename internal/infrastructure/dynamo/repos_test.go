package dynamo

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/itsharenotes/signup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepo_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	tbl := newFakeTable()
	repo := NewAccountRepo(tbl, "accounts")

	_, err := repo.GetByIdentifier(ctx, "13900001111")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	acc := &domain.Account{AccountID: "01J0", Identifier: "13900001111", Kind: domain.KindPhone, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, acc))

	got, err := repo.GetByIdentifier(ctx, "13900001111")
	require.NoError(t, err)
	assert.Equal(t, "01J0", got.AccountID)
	assert.Equal(t, domain.KindPhone, got.Kind)

	require.Len(t, tbl.gets, 2)
	assert.True(t, *tbl.gets[0].ConsistentRead)
}

func TestAccountRepo_CreateDuplicate_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepo(newFakeTable(), "accounts")
	require.NoError(t, repo.Create(ctx, &domain.Account{AccountID: "1", Identifier: "a@b.com"}))

	err := repo.Create(ctx, &domain.Account{AccountID: "2", Identifier: "a@b.com"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestAccountRepo_StoreError_IsNotConflict(t *testing.T) {
	tbl := newFakeTable()
	tbl.err = errors.New("ProvisionedThroughputExceededException")
	repo := NewAccountRepo(tbl, "accounts")

	err := repo.Create(context.Background(), &domain.Account{Identifier: "a@b.com"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrConflict))
}

func TestAccountRepo_PasswordHashOmittedWhenEmpty(t *testing.T) {
	tbl := newFakeTable()
	repo := NewAccountRepo(tbl, "accounts")
	require.NoError(t, repo.Create(context.Background(), &domain.Account{Identifier: "13900001111"}))

	_, ok := tbl.puts[0].Item["password_hash"]
	assert.False(t, ok)
}

func TestActivationRepo_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	tbl := newFakeTable()
	repo := NewActivationRepo(tbl, "activation_tokens")
	exp := time.Unix(1767225600, 0).UTC()

	require.NoError(t, repo.Put(ctx, &domain.ActivationToken{
		Identifier: "13900001111", Kind: domain.KindPhone, Code: "654321", ExpiresAt: exp,
	}))

	// TTL attribute must be a number of Unix seconds.
	n, ok := tbl.puts[0].Item[fieldExpiresAt].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, strconv.FormatInt(exp.Unix(), 10), n.Value)

	got, err := repo.Get(ctx, "13900001111")
	require.NoError(t, err)
	assert.Equal(t, "654321", got.Code)
	assert.True(t, exp.Equal(got.ExpiresAt))

	require.NoError(t, repo.Put(ctx, &domain.ActivationToken{Identifier: "13900001111", Code: "111111", ExpiresAt: exp}))
	got, err = repo.Get(ctx, "13900001111")
	require.NoError(t, err)
	assert.Equal(t, "111111", got.Code, "put overwrites")

	require.NoError(t, repo.Delete(ctx, "13900001111"))
	_, err = repo.Get(ctx, "13900001111")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
