package domain

import (
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/date"
)

// Loan policy constants. These are fixed policy, not configuration.
const (
	// LoanPeriodDays is the fixed loan window between borrow and due date.
	LoanPeriodDays = 14

	// DueSoonThresholdDays marks a loan as due soon when 0..3 days remain.
	DueSoonThresholdDays = 3

	// DueThisWeekThresholdDays is the separate 0..7 day window used by the
	// due-this-week aggregate. Independent of the due-soon threshold.
	DueThisWeekThresholdDays = 7
)

// LoanStatus classifies an active loan relative to its due date.
// It is derived from the due date and the clock on every read, never stored.
type LoanStatus string

const (
	// LoanStatusActive means more than DueSoonThresholdDays remain.
	LoanStatusActive LoanStatus = "active"
	// LoanStatusDueSoon means 0..DueSoonThresholdDays days remain.
	LoanStatusDueSoon LoanStatus = "due_soon"
	// LoanStatusOverdue means the due date has passed.
	LoanStatusOverdue LoanStatus = "overdue"
)

// LoanRecord represents one member's active loan of one book. A book id
// appears at most once per member; the record's dates are immutable once
// created and the loan is deleted on return, never updated.
type LoanRecord struct {
	BookID       string    `json:"book_id"`
	UserID       string    `json:"user_id"`
	BorrowedDate date.Date `json:"borrowed_date"`
	DueDate      date.Date `json:"due_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewLoanRecord creates a loan starting on the given date, due
// LoanPeriodDays later.
func NewLoanRecord(userID, bookID string, borrowed date.Date) *LoanRecord {
	return &LoanRecord{
		BookID:       bookID,
		UserID:       userID,
		BorrowedDate: borrowed,
		DueDate:      borrowed.AddDays(LoanPeriodDays),
		CreatedAt:    time.Now(),
	}
}

// DaysUntilDue returns the whole days remaining until the due date,
// negative once the loan is overdue.
func (l *LoanRecord) DaysUntilDue(now time.Time) int {
	return date.DaysUntil(l.DueDate, now)
}

// Status classifies the loan at the given instant.
func (l *LoanRecord) Status(now time.Time) LoanStatus {
	return StatusForDays(l.DaysUntilDue(now))
}

// IsDueThisWeek reports whether the loan falls in the 0..7 day
// due-this-week aggregate bucket.
func (l *LoanRecord) IsDueThisWeek(now time.Time) bool {
	days := l.DaysUntilDue(now)
	return days >= 0 && days <= DueThisWeekThresholdDays
}

// StatusForDays maps a days-until-due count to a loan status. This is the
// single place the thresholds are applied; catalog cards, the loan table,
// and the aggregate counts all go through it.
func StatusForDays(daysUntilDue int) LoanStatus {
	switch {
	case daysUntilDue < 0:
		return LoanStatusOverdue
	case daysUntilDue <= DueSoonThresholdDays:
		return LoanStatusDueSoon
	default:
		return LoanStatusActive
	}
}

// LoanSummary holds the aggregate counts shown on the dashboard and the
// borrowed-books view. Computed from live loans on every read.
type LoanSummary struct {
	Active      int `json:"active"`
	DueThisWeek int `json:"due_this_week"`
	Overdue     int `json:"overdue"`
}

// Summarize computes aggregate counts for a set of loans at the given
// instant. Active counts every loan; due-this-week and overdue use their
// respective windows.
func Summarize(loans []*LoanRecord, now time.Time) LoanSummary {
	summary := LoanSummary{Active: len(loans)}
	for _, loan := range loans {
		if loan.IsDueThisWeek(now) {
			summary.DueThisWeek++
		}
		if loan.DaysUntilDue(now) < 0 {
			summary.Overdue++
		}
	}
	return summary
}
