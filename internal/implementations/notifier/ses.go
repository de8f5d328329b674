package notifier

import (
	"context"
	"pms/internal/core/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const sesTransport = "service:" + notification.SESServiceName

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SES struct {
	client sesAPI
	// This address must be verified with Amazon SES.
	from string
}

func NewSES(awsConfig aws.Config, from string) *SES {
	return newSES(ses.NewFromConfig(awsConfig), from)
}

func newSES(client sesAPI, from string) *SES {
	if from == "" {
		panic("sender address must not be empty")
	}
	return &SES{client: client, from: from}
}

func (m *SES) Send(ctx context.Context, msg notification.Message) error {
	charset := aws.String("UTF-8")
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: charset},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML), Charset: charset},
				Text: &types.Content{Data: aws.String(msg.Text), Charset: charset},
			},
		},
	})
	if err != nil {
		return notification.NewDeliveryError(sesTransport, err)
	}
	return nil
}
