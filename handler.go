package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sns"
)

type Handler struct {
	relay    *NotificationRelay
	s3Client S3Api
}

type S3Api interface {
	HeadObjectWithContext(ctx aws.Context, input *s3.HeadObjectInput, opts ...request.Option) (*s3.HeadObjectOutput, error)
}

func NewHandler() (*Handler, error) {
	config, err := LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	sess, err := session.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	logger := NewLogger(os.Stderr, config.LogLevel)
	return &Handler{
		relay:    NewNotificationRelay(config, sns.New(sess), logger),
		s3Client: s3.New(sess),
	}, nil
}

// HandleLambdaEvent is the Lambda entry point. The returned error is always
// nil, the outcome is carried by the payload.
func (h *Handler) HandleLambdaEvent(ctx context.Context, event events.S3Event) (string, error) {
	return h.relay.Handle(ctx, event), nil
}

// HandleS3URL replays an object creation event for an existing object, given
// as s3://bucket/key. An error is returned only if the object cannot be
// resolved; relay failures are reported in the payload.
func (h *Handler) HandleS3URL(ctx context.Context, url string) (string, error) {
	bucket, key, err := ParseS3URL(url)
	if err != nil {
		return "", fmt.Errorf("failed to parse S3 URL: %w", err)
	}

	_, err = h.s3Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == "NotFound" {
			return "", fmt.Errorf("object s3://%s/%s does not exist", bucket, key)
		}
		return "", fmt.Errorf("failed to head object: %w", err)
	}

	return h.relay.Handle(ctx, newS3Event(bucket, key)), nil
}

func newS3Event(bucket, key string) events.S3Event {
	return events.S3Event{
		Records: []events.S3EventRecord{
			{
				EventSource: "aws:s3",
				EventName:   "ObjectCreated:Put",
				S3: events.S3Entity{
					Bucket: events.S3Bucket{Name: bucket},
					Object: events.S3Object{Key: key},
				},
			},
		},
	}
}
