// Package stats derives presentation aggregates from already-fetched
// collections. Everything here is pure: collections in, numbers out, with
// the clock passed explicitly.
package stats

import (
	"time"

	"librarium/internal/gateway"
)

const uncategorized = "Uncategorized"

type StatusTally struct {
	Active   int
	Returned int
	Overdue  int
}

type CategoryCount struct {
	Category string
	Count    int
}

type MonthCount struct {
	Month time.Time // first day of the month, UTC
	Count int
}

type Overview struct {
	TotalBooks      int
	TotalUsers      int
	TotalLoans      int
	ActiveLoans     int
	OverdueLoans    int
	AvailableCopies int
	TotalCopies     int
	Statuses        StatusTally
	Categories      []CategoryCount
	Trend           []MonthCount
}

// EffectiveStatus applies the derived-overdue rule: a loan presents as
// overdue if the backend already marked it OVERDUE, or if it is still ACTIVE
// and its due date has passed. The fetched loan itself is never modified.
func EffectiveStatus(loan gateway.Loan, now time.Time) gateway.LoanStatus {
	if loan.Status == gateway.LoanOverdue {
		return gateway.LoanOverdue
	}
	if loan.Status == gateway.LoanActive && loan.DueDate != nil {
		today := now.UTC().Truncate(24 * time.Hour)
		if loan.DueDate.Time.Before(today) {
			return gateway.LoanOverdue
		}
	}
	return loan.Status
}

func TallyStatuses(loans []gateway.Loan, now time.Time) StatusTally {
	var tally StatusTally
	for _, loan := range loans {
		switch EffectiveStatus(loan, now) {
		case gateway.LoanActive:
			tally.Active++
		case gateway.LoanReturned:
			tally.Returned++
		case gateway.LoanOverdue:
			tally.Overdue++
		}
	}
	return tally
}

// GroupByCategory tallies books per category, preserving the order in which
// each category first appears, truncated to max groups. Books without a
// category count under "Uncategorized".
func GroupByCategory(books []gateway.Book, max int) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, book := range books {
		category := uncategorized
		if book.Category != nil && *book.Category != "" {
			category = *book.Category
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	if max > 0 && len(order) > max {
		order = order[:max]
	}

	groups := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		groups = append(groups, CategoryCount{Category: category, Count: counts[category]})
	}
	return groups
}

// MonthlyBorrows counts borrows in each of the trailing months, oldest
// first, the current month last. Loans without a borrow date are skipped.
func MonthlyBorrows(loans []gateway.Loan, months int, now time.Time) []MonthCount {
	if months <= 0 {
		return nil
	}

	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	trend := make([]MonthCount, months)
	index := make(map[time.Time]int, months)
	for i := 0; i < months; i++ {
		month := current.AddDate(0, i-(months-1), 0)
		trend[i] = MonthCount{Month: month}
		index[month] = i
	}

	for _, loan := range loans {
		if loan.BorrowDate == nil {
			continue
		}
		borrowed := loan.BorrowDate.Time
		month := time.Date(borrowed.Year(), borrowed.Month(), 1, 0, 0, 0, 0, time.UTC)
		if i, ok := index[month]; ok {
			trend[i].Count++
		}
	}
	return trend
}

func BuildOverview(books []gateway.Book, users []gateway.User, loans []gateway.Loan, maxCategories, trendMonths int, now time.Time) Overview {
	tally := TallyStatuses(loans, now)

	overview := Overview{
		TotalBooks:   len(books),
		TotalUsers:   len(users),
		TotalLoans:   len(loans),
		ActiveLoans:  tally.Active,
		OverdueLoans: tally.Overdue,
		Statuses:     tally,
		Categories:   GroupByCategory(books, maxCategories),
		Trend:        MonthlyBorrows(loans, trendMonths, now),
	}
	for _, book := range books {
		overview.AvailableCopies += book.AvailableCopies
		overview.TotalCopies += book.TotalCopies
	}
	return overview
}
