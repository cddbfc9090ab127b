package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/tipofmy/portal/internal/config"
	"github.com/tipofmy/portal/internal/pkg/logger"
	"github.com/tipofmy/portal/internal/waitlist"
)

// SESNotifier emails the operator about new signups through AWS SES v2.
type SESNotifier struct {
	client    *sesv2.Client
	operator  string
	fromEmail string
	fromName  string
	timeout   time.Duration
	renderer  *renderer
}

// NewSESNotifier creates a live notifier from static SES credentials.
func NewSESNotifier(ctx context.Context, ses appconfig.SESConfig, notify appconfig.NotifyConfig) (*SESNotifier, error) {
	if !ses.HasCredentials() {
		return nil, fmt.Errorf("SES credentials are required for live notifications")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(ses.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ses.AccessKey, ses.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	r, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &SESNotifier{
		client:    sesv2.NewFromConfig(awsCfg),
		operator:  notify.OperatorEmail,
		fromEmail: notify.FromEmail,
		fromName:  notify.FromName,
		timeout:   ses.Timeout(),
		renderer:  r,
	}, nil
}

// Mode identifies this notifier in logs and health output.
func (n *SESNotifier) Mode() string { return "live" }

// Notify sends the operator email for one stored signup.
func (n *SESNotifier) Notify(ctx context.Context, signup *waitlist.Signup) error {
	html, text, err := n.renderer.Render(signup)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)),
		Destination:      &types.Destination{ToAddresses: []string{n.operator}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(n.renderer.Subject(signup)), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(text), Charset: aws.String("UTF-8")},
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String("category"), Value: aws.String(string(signup.Category))},
			{Name: aws.String("source"), Value: aws.String(signup.Source)},
		},
	}

	result, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	logger.Info("operator notification sent",
		"email", signup.Email, "category", string(signup.Category), "message_id", messageID)
	return nil
}
