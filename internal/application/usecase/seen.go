package usecase

import (
	"fmt"

	"github.com/tesso57/ytnotify/internal/domain/video"
)

// SeenService inspects and edits the persisted seen set.
// Unlike a watch run it refuses to work on an unreadable store,
// so a corrupt file is never silently replaced.
type SeenService struct {
	Repo SeenRepository
}

// NewSeenService constructs a SeenService.
func NewSeenService(repo SeenRepository) SeenService {
	return SeenService{Repo: repo}
}

// List returns the stored ids in sorted order.
func (s SeenService) List() ([]string, error) {
	set, err := s.Repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load seen set: %w", err)
	}
	return set.IDs(), nil
}

// Forget removes ids so their entries are evaluated again on the next run.
// It returns how many ids were actually removed and saves only when
// something changed.
func (s SeenService) Forget(ids ...string) (int, error) {
	set, err := s.Repo.Load()
	if err != nil {
		return 0, fmt.Errorf("load seen set: %w", err)
	}
	if set == nil {
		set = video.NewSeenSet()
	}
	removed := set.Remove(ids...)
	if removed == 0 {
		return 0, nil
	}
	if err := s.Repo.Save(set); err != nil {
		return 0, fmt.Errorf("save seen set: %w", err)
	}
	return removed, nil
}
