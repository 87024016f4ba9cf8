package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Confirmation is sent to the candidate after submission.
type Confirmation struct {
	To            string
	FullName      string
	ApplicationID string
}

// Submission is the recruiter-facing alert about a new application.
type Submission struct {
	ApplicationID string
	FullName      string
	Email         string
	College       string
	Degree        string
	OverallScore  int
}

// Notifier delivers best-effort messages. Callers log errors and move on.
type Notifier interface {
	NotifyApplicant(ctx context.Context, c Confirmation) error
	NotifyRecruiter(ctx context.Context, s Submission) error
}

// LogNotifier only writes an audit line per message. Alone it stands in for
// SMTP; next to SMTP in a Multi it keeps a record of what was sent.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier { return &LogNotifier{log: log} }

func (n *LogNotifier) NotifyApplicant(_ context.Context, c Confirmation) error {
	n.log.Info().Str("application_id", c.ApplicationID).Str("to", c.To).Msg("notify: applicant confirmation")
	return nil
}

func (n *LogNotifier) NotifyRecruiter(_ context.Context, s Submission) error {
	n.log.Info().Str("application_id", s.ApplicationID).Msg("notify: recruiter alert")
	return nil
}

// Multi fans a message out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyApplicant(ctx context.Context, c Confirmation) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyApplicant(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyRecruiter(ctx context.Context, s Submission) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyRecruiter(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
