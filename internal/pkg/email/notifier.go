package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RequestInfo describes the request during which a failure happened
type RequestInfo struct {
	Method    string
	Path      string
	ClientIP  string
	UserAgent string
	ActorID   *int64
}

type requestInfoKey struct{}

// WithRequestInfo attaches request details for later exception reports
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// RequestInfoFrom returns the request details stored in ctx, if any
func RequestInfoFrom(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info, ok
}

// Notifier reports failures to operators
type Notifier interface {
	NotifyException(ctx context.Context, err error) error
}

// ExceptionNotifier mails an exception report to the admin recipients
type ExceptionNotifier struct {
	mailer     Mailer
	recipients []string
	subject    string
	logger     zerolog.Logger
	now        func() time.Time
}

// NewExceptionNotifier creates a new ExceptionNotifier
func NewExceptionNotifier(mailer Mailer, recipients []string, logger zerolog.Logger) *ExceptionNotifier {
	return &ExceptionNotifier{
		mailer:     mailer,
		recipients: recipients,
		subject:    "[Scholars] Exception report",
		logger:     logger,
		now:        time.Now,
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 700px;">
		<h2 style="color: #b00020;">{{.Error}}</h2>
		<table cellpadding="4">
			<tr><td><b>Time</b></td><td>{{.Time}}</td></tr>
			{{if .HasRequest}}
			<tr><td><b>Request</b></td><td>{{.Method}} {{.Path}}</td></tr>
			<tr><td><b>Actor</b></td><td>{{.Actor}}</td></tr>
			<tr><td><b>Client IP</b></td><td>{{.ClientIP}}</td></tr>
			<tr><td><b>User agent</b></td><td>{{.UserAgent}}</td></tr>
			{{end}}
		</table>
	</div>
</body>
</html>`))

type reportData struct {
	RequestInfo
	Error      string
	Time       string
	Actor      string
	HasRequest bool
}

// Render builds the HTML body of the report
func (n *ExceptionNotifier) Render(ctx context.Context, err error) (string, error) {
	data := reportData{
		Error: err.Error(),
		Time:  n.now().UTC().Format(time.RFC3339),
		Actor: "anonymous",
	}
	if info, ok := RequestInfoFrom(ctx); ok {
		data.RequestInfo = info
		data.HasRequest = true
		if info.ActorID != nil {
			data.Actor = fmt.Sprintf("user #%d", *info.ActorID)
		}
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render exception report: %w", err)
	}
	return b.String(), nil
}

// NotifyException sends one report for err
func (n *ExceptionNotifier) NotifyException(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if len(n.recipients) == 0 {
		n.logger.Warn().Err(err).Msg("No admin recipients configured - exception report not sent")
		return nil
	}

	body, renderErr := n.Render(ctx, err)
	if renderErr != nil {
		return renderErr
	}

	if sendErr := n.mailer.SendHTML(ctx, n.recipients, n.subject, body); sendErr != nil {
		return fmt.Errorf("failed to send exception report: %w", sendErr)
	}

	n.logger.Info().Strs("to", n.recipients).Msg("Exception report sent")
	return nil
}
