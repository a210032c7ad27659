package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-link-saver/pkg/mailer/templates"
)

// ErrInvalidJob marks a job that can never be delivered.
var ErrInvalidJob = errors.New("invalid email job")

// Deliver renders job when it names a template and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if !job.Valid() {
		return ErrInvalidJob
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJob, err)
		}
	}
	return s.Send(ctx, job.To, subject, text, html)
}
