package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/membersys/account-service/internal/core/domain"
)

const tokenCollection = "email_tokens"

type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(tokenCollection)}
}

type tokenDoc struct {
	AccountID string    `bson:"account_id"`
	Value     string    `bson:"value"`
	IssuedAt  time.Time `bson:"issued_at"`
}

// Save upserts the account's token document, replacing any previously issued
// token. The unique account_id index keeps the invariant of at most one
// active token per account.
func (r *TokenRepository) Save(ctx context.Context, token *domain.VerificationToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := tokenDoc{
		AccountID: token.AccountID,
		Value:     token.Value,
		IssuedAt:  token.IssuedAt,
	}
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"account_id": token.AccountID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindByValue(ctx context.Context, value string) (*domain.VerificationToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDoc
	if err := r.coll.FindOne(ctx, bson.M{"value": value}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &domain.VerificationToken{
		Value:     doc.Value,
		AccountID: doc.AccountID,
		IssuedAt:  doc.IssuedAt.UTC(),
	}, nil
}

// EnsureIndexes creates the indexes backing the one-token-per-account
// invariant and the token value lookup.
func (r *TokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "value", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
