package services

import (
	"context"
	"testing"

	"github.com/phdonas/site/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContentWarmer is a mock type for the contentWarmer interface.
type MockContentWarmer struct {
	mock.Mock
}

func (m *MockContentWarmer) GetArticles(ctx context.Context, limit int) ([]models.Article, Source) {
	args := m.Called(limit)
	return args.Get(0).([]models.Article), args.Get(1).(Source)
}

func TestRefreshService_Warm(t *testing.T) {
	t.Run("A warm pass reads the full listing once", func(t *testing.T) {
		warmer := new(MockContentWarmer)
		warmer.On("GetArticles", 0).Return([]models.Article{{ID: "1"}}, SourceLive).Once()

		service := NewRefreshService(warmer, 0)
		service.Warm(context.Background())

		warmer.AssertExpectations(t)
	})

	t.Run("Run stops when the context is cancelled", func(t *testing.T) {
		warmer := new(MockContentWarmer)
		warmer.On("GetArticles", 0).Return([]models.Article{}, SourceCache)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewRefreshService(warmer, 0).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		// The startup warm still happened before the ticker loop observed cancellation.
		warmer.AssertNumberOfCalls(t, "GetArticles", 1)
	})
}
