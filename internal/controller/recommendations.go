package controller

import (
	"context"
	"sync"

	"librarium/internal/gateway"
	"librarium/internal/notify"
)

type RecommendationsAPI interface {
	GetMostBorrowed(ctx context.Context, limit int) ([]gateway.Recommendation, error)
	GetRecommendationsForUser(ctx context.Context, userID int64) ([]gateway.Recommendation, error)
}

// RecommendationsController loads the popularity ranking and the per-user
// recommendations together, all-or-nothing like the dashboard.
type RecommendationsController struct {
	api  RecommendationsAPI
	sink notify.Sink

	mu           sync.Mutex
	loading      bool
	mostBorrowed []gateway.Recommendation
	personalized []gateway.Recommendation
	loaded       bool
	epoch        uint64
	closed       bool
}

func NewRecommendationsController(api RecommendationsAPI, sink notify.Sink) *RecommendationsController {
	return &RecommendationsController{api: api, sink: sink}
}

func (rc *RecommendationsController) Load(ctx context.Context, userID int64, limit int) error {
	rc.mu.Lock()
	if rc.closed {
		rc.mu.Unlock()
		return ErrClosed
	}
	rc.loading = true
	rc.loaded = false
	rc.epoch++
	epoch := rc.epoch
	rc.mu.Unlock()

	var (
		wg          sync.WaitGroup
		borrowed    []gateway.Recommendation
		personal    []gateway.Recommendation
		borrowedErr error
		personalErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		borrowed, borrowedErr = rc.api.GetMostBorrowed(ctx, limit)
	}()
	go func() {
		defer wg.Done()
		personal, personalErr = rc.api.GetRecommendationsForUser(ctx, userID)
	}()
	wg.Wait()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.closed || epoch != rc.epoch {
		if rc.closed {
			rc.loading = false
		}
		return nil
	}
	rc.loading = false

	err := borrowedErr
	if err == nil {
		err = personalErr
	}
	if err != nil {
		rc.sink.Error("Failed to load recommendations")
		return err
	}

	rc.mostBorrowed = borrowed
	rc.personalized = personal
	rc.loaded = true
	return nil
}

func (rc *RecommendationsController) MostBorrowed() ([]gateway.Recommendation, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]gateway.Recommendation(nil), rc.mostBorrowed...), rc.loaded
}

func (rc *RecommendationsController) Personalized() ([]gateway.Recommendation, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]gateway.Recommendation(nil), rc.personalized...), rc.loaded
}

func (rc *RecommendationsController) Loading() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.loading
}

func (rc *RecommendationsController) Close() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.closed = true
	rc.epoch++
}
