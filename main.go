package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
)

func main() {
	h, err := NewHandler()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise handler")
	}

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(h.HandleLambdaEvent)
		return
	}

	// Outside Lambda, replay a notification for an existing object.
	if len(os.Args) < 2 {
		log.Fatal().Msg("s3 url is required as an argument")
	}
	result, err := h.HandleS3URL(context.Background(), os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Str("url", os.Args[1]).Msg("failed to replay notification")
	}
	fmt.Println(result)
}
