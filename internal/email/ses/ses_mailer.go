package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"capprice/internal/domain"
	"capprice/internal/port"
)

type sesMailer struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESMailer creates a ReportMailer that sends through Amazon SES.
func NewSESMailer(ctx context.Context, region, fromAddress, fromName string) (port.ReportMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesMailer{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (m *sesMailer) SendReport(ctx context.Context, msg port.ReportEmail) error {
	subject := Subject(msg)
	from := fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	textBody := TextBody(msg)

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &msg.HTML},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: SES SendEmail: %v", domain.ErrReportDeliveryFailed, err)
	}
	return nil
}

// Subject is the e-mail subject line of a report.
func Subject(msg port.ReportEmail) string {
	return fmt.Sprintf("Laudo de precificação CAP - simulação %s", shortID(msg))
}

// TextBody is the plain-text alternative sent with the HTML report.
func TextBody(msg port.ReportEmail) string {
	var b strings.Builder
	b.WriteString("Segue o laudo da sua simulação de precificação.\n\n")
	if msg.Summary != "" {
		b.WriteString(msg.Summary)
		b.WriteString("\n\n")
	}
	b.WriteString("Abra este e-mail em um cliente com suporte a HTML para ver o laudo completo.\n")
	return b.String()
}

func shortID(msg port.ReportEmail) string {
	return strings.SplitN(msg.SimulationID.String(), "-", 2)[0]
}
