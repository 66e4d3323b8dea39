package common

import (
	"context"
	"errors"
	"log"
	"receh48/src/config"
	"receh48/src/lib"
	awslib "receh48/src/lib/aws"
	"receh48/src/utils"

	"github.com/tidwall/gjson"
)

var ErrInvalidEmailPayload = errors.New("invalid email payload")

func stringArray(payload, path string) []string {
	arr := gjson.Get(payload, path).Array()
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseEmailPayload reads a queued email written by mailer.NewMailerMessage.
func ParseEmailPayload(payload string) (*lib.SendMailInput, error) {
	if !gjson.Valid(payload) {
		return nil, ErrInvalidEmailPayload
	}
	input := &lib.SendMailInput{
		From:     gjson.Get(payload, "from").String(),
		FromName: gjson.Get(payload, "from-name").String(),
		To:       stringArray(payload, "to"),
		Cc:       stringArray(payload, "cc"),
		Bcc:      stringArray(payload, "bcc"),
		ReplyTo:  gjson.Get(payload, "reply-to").String(),
		Subject:  gjson.Get(payload, "subject").String(),
		Body:     gjson.Get(payload, "body").String(),
		Html:     gjson.Get(payload, "html").Bool(),
	}
	if len(input.To) == 0 {
		return nil, ErrInvalidEmailPayload
	}
	return input, nil
}

func EmailsToSendHandler(payload string) {
	input, err := ParseEmailPayload(payload)
	if err != nil {
		log.Printf("[MAILER] Received invalid json body. Aborting: %s\n", err.Error())
		return
	}
	if err := lib.SendMail(input); err != nil {
		log.Printf("[MAILER] error sending email: %s\n", err.Error())
		return
	}
	log.Printf("[MAILER]: an email has been sent to %s\n", input.To)
}

func EmailsToSendConsumer(ctx context.Context) {
	qname := utils.WithSuffix(config.EMAIL_QUEUE)
	c := awslib.NewSQSConsumer(qname, EmailsToSendHandler)
	c.Listen(ctx)
}
