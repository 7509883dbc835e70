package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/vastrado/vastrado-api/internal/domain"
)

// OTPStore is the DynamoDB-backed OTP store. PK: email. The expires_at
// attribute doubles as the table's TTL so stale records that were never
// verified get reaped without a sweeper.
//
// A plain PutItem gives the same overwrite-on-reissue semantics as the
// in-memory store: per-item writes are atomic, so two racing issuances for
// one email resolve to whichever landed last.
type OTPStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewOTPStore(client *dynamodb.Client, tableName string) *OTPStore {
	return &OTPStore{client: client, tableName: tableName}
}

func (s *OTPStore) Put(ctx context.Context, rec *domain.OTPRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	return err
}

func (s *OTPStore) Get(ctx context.Context, email string) (*domain.OTPRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("otp record for %q: %w", email, domain.ErrNotFound)
	}
	var rec domain.OTPRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *OTPStore) Delete(ctx context.Context, email string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("email", email),
	})
	return err
}
