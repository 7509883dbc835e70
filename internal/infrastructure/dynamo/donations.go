package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/vastrado/vastrado-api/internal/domain"
)

// DonationRepo provides typed DynamoDB operations for the donations table.
// PK: donation_id. The listing is a table Scan; the donations table stays
// small enough (an NGO's open needs) that a GSI is not worth its cost yet.
type DonationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDonationRepo(client *dynamodb.Client, tableName string) *DonationRepo {
	return &DonationRepo{client: client, tableName: tableName}
}

func (r *DonationRepo) Put(ctx context.Context, d *domain.Donation) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal donation: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DonationRepo) Get(ctx context.Context, donationID string) (*domain.Donation, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("donation_id", donationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("donation %s: %w", donationID, domain.ErrNotFound)
	}
	var d domain.Donation
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all donations, newest first (reverse ULID order).
func (r *DonationRepo) List(ctx context.Context) ([]domain.Donation, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var donations []domain.Donation
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &donations); err != nil {
		return nil, err
	}
	sort.Slice(donations, func(i, j int) bool {
		return donations[i].DonationID > donations[j].DonationID
	})
	return donations, nil
}
