package main

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const successBody = "Notification sent successfully"

// FormatMessage builds the notification text published for a newly created object.
func FormatMessage(bucket, key string) string {
	return fmt.Sprintf("New file uploaded: %s/%s", bucket, key)
}

// SuccessResponse returns the status payload for a published notification.
// Unless embed is set the message is appended after the closing brace, which is
// the format existing consumers of this function parse.
func SuccessResponse(message string, embed bool) string {
	if embed {
		return fmt.Sprintf(`{"statusCode": 200, "body": %s}`, quote(successBody+": "+message))
	}
	return fmt.Sprintf(`{"statusCode": 200, "body": %s}`, quote(successBody)) + message
}

func FailureResponse(err error) string {
	return fmt.Sprintf(`{"statusCode": 500, "body": %s}`, quote(err.Error()))
}

// quote renders s as a JSON string literal without HTML escaping, so keys
// containing '&' or '<' appear as uploaded.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
