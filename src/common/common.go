package common

import (
	"context"
	"log"
	"receh48/src/config"
)

// SQSConsumers starts the queue consumers. Without EMAIL_QUEUE mail is sent
// inline and nothing listens.
func SQSConsumers(ctx context.Context) {
	if config.EMAIL_QUEUE == "" {
		log.Println("[SQS] EMAIL_QUEUE not set, email consumer disabled")
		return
	}
	EmailsToSendConsumer(ctx)
}
