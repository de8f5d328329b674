package notifier

import (
	"context"
	"fmt"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

type Settings struct {
	From      string
	AWSRegion string
}

// NewMailer builds the transport that delivers messages directly, without a
// broker in between.
func NewMailer(
	ctx context.Context,
	log logging.Logger,
	config notification.Config,
	settings Settings,
) (notification.Mailer, error) {
	switch c := config.(type) {
	case notification.DevConsole:
		return NewConsoleMailer(log), nil
	case notification.CustomSMTP:
		return NewSMTP(c, settings.From), nil
	case notification.ProviderService:
		if c.Name == notification.SESServiceName {
			cfg, err := loadAWSConfig(ctx, c, settings.AWSRegion)
			if err != nil {
				return nil, err
			}
			return NewSES(cfg, settings.From), nil
		}
		smtp, ok := notification.ResolveService(c)
		if !ok {
			return nil, fmt.Errorf("unknown email service %q", c.Name)
		}
		return NewSMTP(smtp, settings.From), nil
	default:
		return nil, fmt.Errorf("%s is not a direct mail transport", config.Transport())
	}
}

func loadAWSConfig(ctx context.Context, c notification.ProviderService, region string) (aws.Config, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(region)}
	if c.User != "" {
		opts = append(
			opts,
			awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.User, c.Pass, "")),
		)
	}
	return awsConfig.LoadDefaultConfig(ctx, opts...)
}
