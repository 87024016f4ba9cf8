package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/queue"
)

type enrichStub struct {
	application.UseCase
	err error
}

func (s enrichStub) Enrich(context.Context, string) (application.Application, error) {
	return application.Application{}, s.err
}

func TestEnrichHandler(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, enrichHandler(enrichStub{})(ctx, "id"))

	err := enrichHandler(enrichStub{err: application.ErrNotFound})(ctx, "id")
	assert.ErrorIs(t, err, queue.ErrDrop)

	boom := errors.New("db down")
	err = enrichHandler(enrichStub{err: boom})(ctx, "id")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, queue.ErrDrop)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "worker", "migrate", "backfill", "export"} {
		assert.True(t, names[want], want)
	}
}
