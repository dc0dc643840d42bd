package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// SNSAPI is the subset of the SNS client used for publishing.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes notification events as JSON to a topic. The event type
// travels as a message attribute so subscriptions can filter on it.
type SNSNotifier struct {
	client   SNSAPI
	topicArn string
	log      *zap.Logger
}

var _ interfaces.INotifier = (*SNSNotifier)(nil)

func NewSNSNotifier(client SNSAPI, topicArn string, log *zap.Logger) *SNSNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &SNSNotifier{client: client, topicArn: topicArn, log: log.Named("sns")}
}

func NewSNSNotifierFromConfig(cfg aws.Config, topicArn string, log *zap.Logger) *SNSNotifier {
	return NewSNSNotifier(sns.NewFromConfig(cfg), topicArn, log)
}

func (n *SNSNotifier) Notify(ctx context.Context, event entities.NotificationEvent) error {
	if n.topicArn == "" {
		return fmt.Errorf("empty topicArn")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	n.log.Debug("publish", zap.String("topic", n.topicArn), zap.String("type", string(event.Type)), zap.Int("message_len", len(body)))

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicArn),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(string(event.Type))},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", n.topicArn, err)
	}
	return nil
}
