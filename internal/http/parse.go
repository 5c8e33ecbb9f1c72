package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kopilka/internal/core"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

type categoryRequest struct {
	Name  string               `json:"name"`
	Type  core.TransactionType `json:"type"`
	Color string               `json:"color"`
	Icon  string               `json:"icon"`
}

type transactionRequest struct {
	Type       core.TransactionType `json:"type"`
	Amount     float64              `json:"amount"`
	CategoryID int64                `json:"categoryId"`
	Date       core.Date            `json:"date"`
	Comment    string               `json:"comment"`
	Currency   string               `json:"currency"`
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// parseCriteria maps query parameters onto filter criteria. Absent or
// blank parameters leave the corresponding constraint unset.
func parseCriteria(query url.Values) (core.Criteria, error) {
	var c core.Criteria

	if v := strings.TrimSpace(query.Get("tab")); v != "" {
		switch core.Tab(v) {
		case core.TabAll, core.TabIncome, core.TabExpense:
			c.ActiveTab = core.Tab(v)
		default:
			return core.Criteria{}, fmt.Errorf("invalid tab %q", v)
		}
	}

	if v := strings.TrimSpace(query.Get("startDate")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid startDate %q", v)
		}
		c.StartDate = d
	}
	if v := strings.TrimSpace(query.Get("endDate")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid endDate %q", v)
		}
		c.EndDate = d
	}

	if v := strings.TrimSpace(query.Get("categoryId")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid categoryId %q", v)
		}
		c.CategoryID = id
	}

	if v := strings.TrimSpace(query.Get("minAmount")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid minAmount %q", v)
		}
		c.MinAmount = &f
	}
	if v := strings.TrimSpace(query.Get("maxAmount")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid maxAmount %q", v)
		}
		c.MaxAmount = &f
	}

	return c, nil
}
