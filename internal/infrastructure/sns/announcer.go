package sns

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/vastrado/vastrado-api/internal/config"
	"github.com/vastrado/vastrado-api/internal/domain"
)

// Announcer publishes donation events to an SNS topic so interested
// subscribers (donor notification fan-out, back-office tooling) hear about
// new needs without polling the list endpoint.
type Announcer interface {
	AnnounceDonation(ctx context.Context, d *domain.Donation) error
}

type announcer struct {
	client   *sns.Client
	topicARN string
}

func NewAnnouncer(cfg *config.Config) (Announcer, error) {
	if cfg.SNSTopicARN == "" {
		return nil, fmt.Errorf("SNS_TOPIC_ARN not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &announcer{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

func (a *announcer) AnnounceDonation(ctx context.Context, d *domain.Donation) error {
	subject := "New donation request: " + d.Title
	message := fmt.Sprintf("%s needs %q (%s). See the NGO panel for details.",
		d.NGOEmail, d.Title, d.Category)
	_, err := a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &a.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	return err
}
