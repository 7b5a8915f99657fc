package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	maxBodyBytes = 1 << 20

	msgAllFieldsRequired = "All fields are required"
	msgInvalidDate       = "Invalid date"
	msgInvalidBody       = "Invalid request body"
)

var errInvalidAmount = errors.New("amount must be a number")

// amountField accepts a JSON number or a numeric string, as HTML forms send both.
type amountField struct {
	value float64
	set   bool
}

func (a *amountField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return errInvalidAmount
		}
		a.value, a.set = v, true
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errInvalidAmount
	}
	a.value, a.set = v, true
	return nil
}

// present mirrors the truthiness check of the original API: zero counts as missing.
func (a amountField) present() bool {
	return a.set && a.value != 0
}

type recordRequest struct {
	Icon     string      `json:"icon"`
	Source   string      `json:"source"`
	Category string      `json:"category"`
	Amount   amountField `json:"amount"`
	Date     string      `json:"date"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidAmount) {
		writeMessage(w, http.StatusBadRequest, "Amount must be a number")
		return
	}
	writeMessage(w, http.StatusBadRequest, msgInvalidBody)
}

// parseDate accepts YYYY-MM-DD or RFC 3339 and returns the calendar date at UTC midnight.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
