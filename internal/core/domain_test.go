package core

import (
	"encoding/json"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Type: Expense, Amount: 100, CategoryID: 1, Date: NewDate(2024, 1, 5), UserID: 1}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "transfer", Amount: 100, CategoryID: 1, Date: NewDate(2024, 1, 5)},
		{Type: Income, Amount: 0, CategoryID: 1, Date: NewDate(2024, 1, 5)},
		{Type: Income, Amount: -5, CategoryID: 1, Date: NewDate(2024, 1, 5)},
		{Type: Income, Amount: 100, CategoryID: 0, Date: NewDate(2024, 1, 5)},
		{Type: Income, Amount: 100, CategoryID: 1},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	cases := []struct {
		c  Category
		ok bool
	}{
		{Category{Name: "Продукты", Type: Expense, Icon: "shopping_cart"}, true},
		{Category{Name: "Зарплата", Type: Income}, true}, // icon optional
		{Category{Name: "", Type: Income}, false},
		{Category{Name: "  ", Type: Income}, false},
		{Category{Name: "x", Type: "savings"}, false},
		{Category{Name: "x", Type: Income, Icon: "spaceship"}, false},
	}
	for i, tc := range cases {
		err := tc.c.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestUserValidate(t *testing.T) {
	cases := []struct {
		u  User
		ok bool
	}{
		{User{Email: "a@b.cc", Password: "secret"}, true},
		{User{Email: "", Password: "secret"}, false},
		{User{Email: "not-an-email", Password: "secret"}, false},
		{User{Email: "@b.cc", Password: "secret"}, false},
		{User{Email: "a@b.cc", Password: ""}, false},
	}
	for i, tc := range cases {
		err := tc.u.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	tx := Transaction{ID: 1, Type: Expense, Amount: 50, CategoryID: 2, Date: NewDate(2024, 1, 10), UserID: 3}
	raw, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Transaction
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Date.Equal(tx.Date.Time) {
		t.Fatalf("date changed: %v vs %v", back.Date, tx.Date)
	}
}

func TestDateUnmarshalTimestamp(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-01-10T15:04:05Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2024-01-10" {
		t.Fatalf("got %s", d)
	}
}

func TestDisplayColor(t *testing.T) {
	if got := (Category{Color: "#f44336"}).DisplayColor(); got != "#f44336" {
		t.Fatalf("got %s", got)
	}
	if got := (Category{}).DisplayColor(); got != DefaultColor {
		t.Fatalf("got %s", got)
	}
}

func TestStarterCategories(t *testing.T) {
	cats := StarterCategories(7)
	income, expense := 0, 0
	for i, c := range cats {
		if err := c.Validate(); err != nil {
			t.Fatalf("starter category %d invalid: %v", i, err)
		}
		if c.UserID != 7 {
			t.Fatalf("starter category %d has user %d", i, c.UserID)
		}
		if c.Type == Income {
			income++
		} else {
			expense++
		}
	}
	if income != 3 || expense != 7 {
		t.Fatalf("got %d income / %d expense starter categories", income, expense)
	}
}
