package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/rs/zerolog"
)

// ErrNoRecords is returned for an event without any S3 records.
var ErrNoRecords = errors.New("event contains no records")

// SNSApi is the part of the SNS client the relay needs. *sns.SNS satisfies it
// and is safe for concurrent use.
type SNSApi interface {
	PublishWithContext(ctx aws.Context, input *sns.PublishInput, opts ...request.Option) (*sns.PublishOutput, error)
}

// NotificationRelay publishes a message to an SNS topic for each object
// creation event it handles. Only the first record of an event is used.
type NotificationRelay struct {
	snsClient SNSApi
	topicARN  string
	embed     bool
	logger    zerolog.Logger
}

func NewNotificationRelay(config Config, snsClient SNSApi, logger zerolog.Logger) *NotificationRelay {
	return &NotificationRelay{
		snsClient: snsClient,
		topicARN:  config.TopicARN,
		embed:     config.EmbedMessageInBody,
		logger:    logger,
	}
}

// Handle relays event and returns the status payload. It never panics and
// never returns an error; failures are logged and reported in the payload.
func (r *NotificationRelay) Handle(ctx context.Context, event events.S3Event) (result string) {
	logger := r.logger.With().Str("invocation_id", invocationID(ctx)).Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic: %v", p)
			logger.Error().Err(err).Msg("failed to send notification")
			result = FailureResponse(err)
		}
	}()

	message, err := r.relay(ctx, event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to send notification")
		return FailureResponse(err)
	}

	return SuccessResponse(message, r.embed)
}

func (r *NotificationRelay) relay(ctx context.Context, event events.S3Event) (string, error) {
	if len(event.Records) == 0 {
		return "", ErrNoRecords
	}
	record := event.Records[0]
	bucket, key := record.S3.Bucket.Name, record.S3.Object.Key

	logger := zerolog.Ctx(ctx).With().Str("bucket", bucket).Str("key", key).Logger()
	if len(event.Records) > 1 {
		logger.Warn().Int("records", len(event.Records)).Msg("ignoring all but the first record")
	}

	message := FormatMessage(bucket, key)
	res, err := r.snsClient.PublishWithContext(ctx, &sns.PublishInput{
		TopicArn: aws.String(r.topicARN),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", err
	}

	var messageID string
	if res != nil {
		messageID = aws.StringValue(res.MessageId)
	}
	logger.Info().Str("message_id", messageID).Str("topic_arn", r.topicARN).Msg("sent notification")

	return message, nil
}
