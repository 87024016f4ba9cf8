package application

import (
	"context"

	"github.com/artem13815/internhub/pkg/scoring"
)

// Repository - порт хранилища заявок. Внешний ключ - ApplicationID.
type Repository interface {
	// Create inserts the placeholder record and returns it with ID and timestamps set.
	Create(ctx context.Context, a Application) (Application, error)
	GetByApplicationID(ctx context.Context, applicationID string) (Application, error)
	Exists(ctx context.Context, applicationID string) (bool, error)
	// UpdateEnrichment overwrites profile, signals, score and status. Identity
	// fields are never touched, so repeating the call is harmless.
	UpdateEnrichment(ctx context.Context, a Application) error
	UpdateScore(ctx context.Context, applicationID string, r scoring.Result) error
	// List orders by overall score, highest first.
	List(ctx context.Context, limit, offset int) ([]Application, error)
	// ListAll orders by application id.
	ListAll(ctx context.Context) ([]Application, error)
	Count(ctx context.Context) (int, error)
}
