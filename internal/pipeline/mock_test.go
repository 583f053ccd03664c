package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/maplink/internal/resolve"
)

// --- Resolver Mock ---

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, shortURL string) resolve.Result {
	args := m.Called(ctx, shortURL)
	return args.Get(0).(resolve.Result)
}

// --- Pacer fake ---

type countingPacer struct {
	calls int
	err   error
}

func (c *countingPacer) Wait(_ context.Context) error {
	c.calls++
	return c.err
}
