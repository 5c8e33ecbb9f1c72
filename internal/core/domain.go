package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Date is a calendar date with no time-of-day semantics. The wrapped
	// time is always midnight UTC.
	Date struct {
		time.Time
	}

	// Transaction is a single income or expense record. Amount is stored in
	// base-currency units; display conversion happens at presentation time.
	Transaction struct {
		ID         int64           `json:"id"`
		Type       TransactionType `json:"type"`
		Amount     float64         `json:"amount"`
		CategoryID int64           `json:"categoryId"`
		Date       Date            `json:"date"`
		Comment    string          `json:"comment,omitempty"`
		UserID     int64           `json:"userId"`
	}

	Category struct {
		ID     int64           `json:"id"`
		Name   string          `json:"name"`
		Type   TransactionType `json:"type"`
		Color  string          `json:"color,omitempty"`
		Icon   string          `json:"icon,omitempty"`
		UserID int64           `json:"userId"`
	}

	User struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		Password string `json:"password,omitempty"`
		Currency string `json:"currency,omitempty"`
	}
)

var (
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrMissingCategory = errors.New("category is required")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrUnknownIcon     = errors.New("unknown icon")
	ErrEmptyEmail      = errors.New("email cannot be empty")
	ErrMalformedEmail  = errors.New("malformed email")
	ErrEmptyPassword   = errors.New("password cannot be empty")
)

const dateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Tolerate full timestamps written by older clients.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks the fields a submission form would reject before any
// store call. Category existence is checked by the ledger service, which
// holds the category snapshot.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.CategoryID == 0 {
		return ErrMissingCategory
	}
	return t.Date.Validate()
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	if c.Icon != "" && !ValidIcon(c.Icon) {
		return ErrUnknownIcon
	}
	return nil
}

func (u User) Validate() error {
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return ErrEmptyEmail
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ErrMalformedEmail
	}
	if u.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// DisplayColor returns the category color with the UI default applied.
func (c Category) DisplayColor() string {
	if c.Color == "" {
		return DefaultColor
	}
	return c.Color
}
