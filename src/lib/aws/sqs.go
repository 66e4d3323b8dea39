package aws

import (
	"context"
	"log"
	"receh48/src/lib"
	"receh48/src/types"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type SQSConsumer struct {
	Name    string
	handler types.Handler
	client  lib.SQSAPI
	// WaitTimeSeconds is the long poll duration per receive call.
	WaitTimeSeconds int32
}

func NewSQSConsumer(queue string, handler types.Handler) *SQSConsumer {
	return &SQSConsumer{
		Name:            queue,
		handler:         handler,
		WaitTimeSeconds: 20,
	}
}

// WithClient overrides the SQS client.
func (s *SQSConsumer) WithClient(c lib.SQSAPI) *SQSConsumer {
	s.client = c
	return s
}

// Listen polls the queue until ctx is done. Each message is handed to the
// handler and then deleted.
func (s *SQSConsumer) Listen(ctx context.Context) {
	go s.Run(ctx)
}

func (s *SQSConsumer) Run(ctx context.Context) {
	qname := s.Name
	client := s.client
	if client == nil {
		client = lib.AWSGetSQSClient()
	}
	if client == nil {
		log.Printf("[SQS] No client for %s, consumer not started\n", qname)
		return
	}
	qurl, err := lib.GetQueueUrl(ctx, client, qname)
	if err != nil {
		return
	}
	log.Printf("%s: Listening for messages...", qname)
	for {
		if ctx.Err() != nil {
			return
		}
		output, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            qurl,
			WaitTimeSeconds:     s.WaitTimeSeconds,
			MaxNumberOfMessages: 10,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[SQS] Error receiving messages: %s\n", err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}
		for i := range output.Messages {
			m := output.Messages[i]
			s.handle(client, qurl, &m)
		}
	}
}

func (s *SQSConsumer) handle(client lib.SQSAPI, qurl *string, m *sqstypes.Message) {
	body := strings.Clone(aws.ToString(m.Body))
	s.handler(body)
	lib.SQSDeleteMessage(client, qurl, m)
}
