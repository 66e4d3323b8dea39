package mailer

import (
	"encoding/json"
	"fmt"
	"receh48/src/config"
	"receh48/src/lib"
	"receh48/src/utils"
)

// NewMailerMessage queues the email on EMAIL_QUEUE. Without a queue the
// message is sent over SMTP right away.
func NewMailerMessage(input *lib.SendMailInput) error {
	if input.From == "" {
		input.From = config.SMTP_FROM
		input.FromName = config.SMTP_FROM_NAME
	}
	if config.EMAIL_QUEUE == "" {
		if err := lib.SendMail(input); err != nil {
			return fmt.Errorf("error sending email: %s", err.Error())
		}
		return nil
	}
	body, err := json.Marshal(input)
	if err != nil {
		return err
	}
	if err := lib.SQSProduceMessage(utils.WithSuffix(config.EMAIL_QUEUE), string(body)); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}
