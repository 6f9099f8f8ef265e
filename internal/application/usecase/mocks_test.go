package usecase

import (
	"context"
	"slices"

	"github.com/stretchr/testify/mock"
	"github.com/tesso57/ytnotify/internal/domain/video"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]video.Entry, error) {
	args := m.Called(ctx, url)
	entries, _ := args.Get(0).([]video.Entry)
	return entries, args.Error(1)
}

type mockSeenRepo struct {
	mock.Mock
}

func (m *mockSeenRepo) Load() (*video.SeenSet, error) {
	args := m.Called()
	set, _ := args.Get(0).(*video.SeenSet)
	return set, args.Error(1)
}

func (m *mockSeenRepo) Save(set *video.SeenSet) error {
	args := m.Called(set)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, text string) (Ack, error) {
	args := m.Called(ctx, text)
	ack, _ := args.Get(0).(Ack)
	return ack, args.Error(1)
}

// seenIDs matches a saved set holding exactly ids.
func seenIDs(ids ...string) any {
	slices.Sort(ids)
	return mock.MatchedBy(func(set *video.SeenSet) bool {
		return slices.Equal(set.IDs(), ids)
	})
}
