// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/band-planner/auth"
	"github.com/danielhkuo/band-planner/cliparse"
	"github.com/danielhkuo/band-planner/models"
	"github.com/danielhkuo/band-planner/store"
	"github.com/danielhkuo/band-planner/store/sqlstore"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestStore opens a fresh in-memory SQLite store with the full schema
func SetupTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	st, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close(context.Background()) })

	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                3318,
		DatabaseURL:         TestDBURL,
		DatabaseType:        cliparse.DatabaseSQLite,
		PriorityInstruments: []string{"piano", "guitare"},
		NotifyFrom:          cliparse.DefaultNotifyFrom,
		PublicURL:           "http://localhost:3318",
	}
}

// TestDates are the session dates of CreateTestPoll
var TestDates = []string{"2024-01-07", "2024-01-14"}

// CreateTestPoll stores a poll with two dates, participants Alice and Bob,
// and instruments piano and drums. It returns the poll ID and admin key.
func CreateTestPoll(t *testing.T, st store.Store) (pollID, adminKey string) {
	t.Helper()

	adminKey, err := auth.GenerateAdminKey()
	if err != nil {
		t.Fatalf("Failed to generate admin key: %v", err)
	}
	poll := models.Poll{
		ID:            uuid.NewString(),
		Title:         "Test Poll",
		Description:   "A test poll",
		Duration:      "2h",
		CreatedAt:     time.Now().UTC(),
		Dates:         append([]string(nil), TestDates...),
		Participants:  []string{"Alice", "Bob"},
		Instruments:   []string{"piano", "drums"},
		Responses:     []models.Response{},
		DeletionToken: adminKey,
	}
	if err := st.CreatePoll(context.Background(), poll); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll.ID, adminKey
}

// AddTestResponse appends a response that answers every date with answer and
// plays instruments on each of them
func AddTestResponse(t *testing.T, st store.Store, pollID, name string, answer models.Answer, instruments ...string) {
	t.Helper()

	ctx := context.Background()
	poll, err := st.LoadPoll(ctx, pollID)
	if err != nil {
		t.Fatalf("Failed to load test poll: %v", err)
	}

	resp := models.Response{
		Name:               name,
		SubmittedAt:        time.Now().UTC(),
		Answers:            map[string]models.Answer{},
		Instruments:        map[string][]string{},
		UpfrontInstruments: instruments,
	}
	for _, d := range poll.Dates {
		resp.Answers[d] = answer
		resp.Instruments[d] = instruments
	}

	if err := st.ReplaceResponses(ctx, pollID, append(poll.Responses, resp)); err != nil {
		t.Fatalf("Failed to add test response: %v", err)
	}
}

// ErrStoreDown is returned by every FailingStore method
var ErrStoreDown = errors.New("store unavailable")

// FailingStore is a store whose backend is down
type FailingStore struct{}

func (FailingStore) CreatePoll(context.Context, models.Poll) error { return ErrStoreDown }
func (FailingStore) LoadPoll(context.Context, string) (models.Poll, error) {
	return models.Poll{}, ErrStoreDown
}
func (FailingStore) DeletePoll(context.Context, string) error { return ErrStoreDown }
func (FailingStore) ReplaceResponses(context.Context, string, []models.Response) error {
	return ErrStoreDown
}
func (FailingStore) ReplacePlanning(context.Context, string, models.Planning) error {
	return ErrStoreDown
}
func (FailingStore) ReplaceRoster(context.Context, string, []string, []string) error {
	return ErrStoreDown
}
func (FailingStore) Ping(context.Context) error  { return ErrStoreDown }
func (FailingStore) Close(context.Context) error { return nil }

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AdminHeaders returns the header map carrying an admin key
func AdminHeaders(adminKey string) map[string]string {
	return map[string]string{auth.AdminKeyHeader: adminKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
