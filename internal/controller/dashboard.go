package controller

import (
	"context"
	"sync"
	"time"

	"librarium/internal/gateway"
	"librarium/internal/notify"
	"librarium/internal/stats"
)

type DashboardAPI interface {
	GetAllBooks(ctx context.Context) ([]gateway.Book, error)
	GetAllUsers(ctx context.Context) ([]gateway.User, error)
	GetAllLoans(ctx context.Context) ([]gateway.Loan, error)
}

// DashboardController fetches books, users and loans together and derives
// the overview stats. The fetch is all-or-nothing: one failed collection
// means an error state, never a dashboard of misleading zeroes.
type DashboardController struct {
	api           DashboardAPI
	sink          notify.Sink
	maxCategories int
	trendMonths   int
	now           func() time.Time

	mu       sync.Mutex
	loading  bool
	overview *stats.Overview
	epoch    uint64
	closed   bool
}

func NewDashboardController(api DashboardAPI, sink notify.Sink, maxCategories, trendMonths int) *DashboardController {
	return &DashboardController{
		api:           api,
		sink:          sink,
		maxCategories: maxCategories,
		trendMonths:   trendMonths,
		now:           time.Now,
	}
}

func (dc *DashboardController) Load(ctx context.Context) error {
	dc.mu.Lock()
	if dc.closed {
		dc.mu.Unlock()
		return ErrClosed
	}
	dc.loading = true
	dc.overview = nil
	dc.epoch++
	epoch := dc.epoch
	dc.mu.Unlock()

	var (
		wg       sync.WaitGroup
		books    []gateway.Book
		users    []gateway.User
		loans    []gateway.Loan
		booksErr error
		usersErr error
		loansErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		books, booksErr = dc.api.GetAllBooks(ctx)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = dc.api.GetAllUsers(ctx)
	}()
	go func() {
		defer wg.Done()
		loans, loansErr = dc.api.GetAllLoans(ctx)
	}()
	wg.Wait()

	dc.mu.Lock()
	defer dc.mu.Unlock()
	if dc.closed || epoch != dc.epoch {
		if dc.closed {
			dc.loading = false
		}
		return nil
	}
	dc.loading = false

	err := booksErr
	if err == nil {
		err = usersErr
	}
	if err == nil {
		err = loansErr
	}
	if err != nil {
		dc.sink.Error("Failed to load dashboard stats")
		return err
	}

	overview := stats.BuildOverview(books, users, loans, dc.maxCategories, dc.trendMonths, dc.now())
	dc.overview = &overview
	return nil
}

// Overview returns the derived stats, or false while loading or after a
// failed load.
func (dc *DashboardController) Overview() (stats.Overview, bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if dc.overview == nil {
		return stats.Overview{}, false
	}
	return *dc.overview, true
}

func (dc *DashboardController) Loading() bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.loading
}

func (dc *DashboardController) Close() {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.closed = true
	dc.epoch++
}
