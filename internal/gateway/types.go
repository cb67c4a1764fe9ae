package gateway

import (
	"fmt"
	"strings"
	"time"
)

// The gateway serializes dates as plain ISO dates (no time component),
// so time.Time's default RFC 3339 handling does not fit.
const dateLayout = "2006-01-02"

// Date is a calendar date as the gateway exchanges it, e.g. "2024-03-01".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = Date{t}
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Timestamps come back without a zone offset, e.g. "2025-06-15T12:00:00",
// which time.Time's RFC 3339 decoding rejects.
const dateTimeLayout = "2006-01-02T15:04:05"

// DateTime is a timestamp as the gateway exchanges it. An RFC 3339 offset
// is tolerated when present.
type DateTime struct {
	time.Time
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*d = DateTime{t}
	return nil
}

type Book struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	ISBN            string  `json:"isbn"`
	Description     *string `json:"description,omitempty"`
	PublicationDate *Date   `json:"publicationDate,omitempty"`
	Category        *string `json:"category,omitempty"`
	AvailableCopies int     `json:"availableCopies"`
	TotalCopies     int     `json:"totalCopies"`
	AuthorID        *int64  `json:"authorId,omitempty"`
}

type BookWithAuthor struct {
	Book
	AuthorName      string  `json:"authorName"`
	AuthorBiography *string `json:"authorBiography,omitempty"`
}

type Author struct {
	ID        int64   `json:"id,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Bio       *string `json:"bio,omitempty"`
	BirthDate *Date   `json:"birthDate,omitempty"`
}

func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

type User struct {
	ID        int64     `json:"id,omitempty"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt *DateTime `json:"createdAt,omitempty"`
}

type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	LoanOverdue  LoanStatus = "OVERDUE"
)

type Loan struct {
	ID         int64      `json:"id,omitempty"`
	UserID     int64      `json:"userId"`
	BookID     int64      `json:"bookId"`
	BorrowDate *Date      `json:"borrowDate,omitempty"`
	DueDate    *Date      `json:"dueDate,omitempty"`
	ReturnDate *Date      `json:"returnDate,omitempty"`
	Status     LoanStatus `json:"status,omitempty"`
}

type BorrowRequest struct {
	UserID int64 `json:"userId"`
	BookID int64 `json:"bookId"`
}

// Recommendation is a query result, never persisted. BorrowCount is set on
// popularity rankings, Reason on personalized results.
type Recommendation struct {
	BookID      int64   `json:"bookId"`
	Title       string  `json:"title"`
	ISBN        string  `json:"isbn"`
	Category    *string `json:"category,omitempty"`
	BorrowCount *int    `json:"borrowCount,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Identity struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type BookSearch struct {
	Title    string
	ISBN     string
	Category string
}
