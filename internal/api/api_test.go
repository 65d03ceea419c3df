package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/sawantaditi24/RoomSync/internal/db"
	"github.com/sawantaditi24/RoomSync/internal/model"
	"github.com/sawantaditi24/RoomSync/internal/store"
)

func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, zap.NewNop().Sugar(), "*")
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, database
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func putJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func validAvailabilityBody(userID int64) map[string]any {
	return map[string]any{
		"user_id":                       userID,
		"housing_property":              "Park Avenue",
		"apartment_plan":                "2B2B",
		"number_of_roommates_preferred": 2,
		"gender_preference":             "Any",
		"cost_preference_min":           500,
		"cost_preference_max":           900,
		"lease_term":                    "12 months",
		"post_type":                     "post_availability",
	}
}

func TestRegisterUserIdempotent(t *testing.T) {
	server, database := setupTestServer(t)

	body := map[string]string{"name": "Alice", "email": "a@x.com", "contact": "555"}

	resp := postJSON(t, server.URL+"/api/users", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on first registration, got %d", resp.StatusCode)
	}
	first := decodeBody[model.User](t, resp)

	resp = postJSON(t, server.URL+"/api/users", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on repeat registration, got %d", resp.StatusCode)
	}
	second := decodeBody[model.User](t, resp)

	if first.ID != second.ID {
		t.Errorf("expected same id, got %d and %d", first.ID, second.ID)
	}

	var count int
	database.QueryRow(`SELECT COUNT(*) FROM users WHERE email = 'a@x.com'`).Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 stored user, got %d", count)
	}
}

func TestRegisterUserMissingFields(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/users", map[string]string{"name": "Alice"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAvailabilityFlow(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/users", map[string]string{
		"name": "Alice", "email": "a@x.com", "contact": "555",
	})
	user := decodeBody[model.User](t, resp)

	resp = postJSON(t, server.URL+"/api/availabilities", validAvailabilityBody(user.ID))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeBody[model.Availability](t, resp)
	if created.Status != model.AvailabilityStatusAvailable {
		t.Errorf("expected default status 'available', got %q", created.Status)
	}

	resp, err := http.Get(server.URL + "/api/availabilities")
	if err != nil {
		t.Fatalf("GET availabilities: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	posts := decodeBody[[]model.Availability](t, resp)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].User == nil || posts[0].User.ID != user.ID || posts[0].User.Email != "a@x.com" {
		t.Errorf("expected embedded owner profile, got %+v", posts[0].User)
	}

	// Mark filled and confirm an available-only listing excludes it.
	resp = putJSON(t, server.URL+"/api/availabilities/1/status", map[string]string{"status": "filled_up"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Get(server.URL + "/api/availabilities?status=available")
	posts = decodeBody[[]model.Availability](t, resp)
	if len(posts) != 0 {
		t.Errorf("expected filled post excluded from available-only listing, got %d", len(posts))
	}
}

func TestAvailabilityCreateUnknownOwner(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/availabilities", validAvailabilityBody(999))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown owner, got %d", resp.StatusCode)
	}
}

func TestAvailabilityCreateInvalidVocabulary(t *testing.T) {
	server, database := setupTestServer(t)

	ctx := context.Background()
	user, _, _ := store.CreateUser(ctx, database, "Alice", "a@x.com", "555")

	body := validAvailabilityBody(user.ID)
	body["gender_preference"] = "Other"
	resp := postJSON(t, server.URL+"/api/availabilities", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown gender_preference, got %d", resp.StatusCode)
	}

	body = validAvailabilityBody(user.ID)
	body["post_type"] = "wanted"
	resp = postJSON(t, server.URL+"/api/availabilities", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown post_type, got %d", resp.StatusCode)
	}
}

func TestAvailabilityStatusUpdateErrors(t *testing.T) {
	server, _ := setupTestServer(t)

	// Unknown status strings are rejected at the boundary.
	resp := putJSON(t, server.URL+"/api/availabilities/1/status", map[string]string{"status": "gone"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", resp.StatusCode)
	}

	// Valid status against a missing post.
	resp = putJSON(t, server.URL+"/api/availabilities/999/status", map[string]string{"status": "filled_up"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing post, got %d", resp.StatusCode)
	}
}

func TestListSweepsOrphans(t *testing.T) {
	server, database := setupTestServer(t)
	ctx := context.Background()

	user, _, _ := store.CreateUser(ctx, database, "Alice", "a@x.com", "555")
	post, err := store.CreateAvailability(ctx, database, &model.Availability{
		UserID: user.ID, HousingProperty: "Circles", ApartmentPlan: "1B1B",
		RoommatesPreferred: 1, GenderPreference: model.GenderAny,
		CostPreferenceMin: 400, CostPreferenceMax: 700,
		LeaseTerm: "6 months", PostType: model.PostTypeSeek,
	})
	if err != nil {
		t.Fatalf("CreateAvailability: %v", err)
	}

	// External user deletion leaves the post orphaned until the next read.
	if _, err := database.Exec(`DELETE FROM users WHERE id = ?`, user.ID); err != nil {
		t.Fatalf("deleting user: %v", err)
	}

	resp, err := http.Get(server.URL + "/api/availabilities")
	if err != nil {
		t.Fatalf("GET availabilities: %v", err)
	}
	posts := decodeBody[[]model.Availability](t, resp)
	if len(posts) != 0 {
		t.Errorf("expected orphaned post hidden, got %d posts", len(posts))
	}

	// The read also removed it from the store.
	var count int
	database.QueryRow(`SELECT COUNT(*) FROM availabilities WHERE id = ?`, post.ID).Scan(&count)
	if count != 0 {
		t.Error("expected orphaned post to be deleted by the pre-read sweep")
	}
}

func TestListPrunesExpiredFilled(t *testing.T) {
	server, database := setupTestServer(t)
	ctx := context.Background()

	user, _, _ := store.CreateUser(ctx, database, "Alice", "a@x.com", "555")
	post, _ := store.CreateAvailability(ctx, database, &model.Availability{
		UserID: user.ID, HousingProperty: "Patio Gardens", ApartmentPlan: "2B1B",
		RoommatesPreferred: 2, GenderPreference: model.GenderAny,
		CostPreferenceMin: 500, CostPreferenceMax: 800,
		LeaseTerm: "12 months", PostType: model.PostTypeOffer,
	})
	database.Exec(`UPDATE availabilities
		SET status = 'filled_up', filled_at = datetime('now', '-25 hours') WHERE id = ?`, post.ID)

	resp, err := http.Get(server.URL + "/api/availabilities")
	if err != nil {
		t.Fatalf("GET availabilities: %v", err)
	}
	posts := decodeBody[[]model.Availability](t, resp)
	if len(posts) != 0 {
		t.Errorf("expected expired filled post pruned, got %d posts", len(posts))
	}

	var count int
	database.QueryRow(`SELECT COUNT(*) FROM availabilities`).Scan(&count)
	if count != 0 {
		t.Error("expected expired filled post removed from the store")
	}
}

func TestMarketplaceFlow(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/users", map[string]string{
		"name": "Bob", "email": "b@x.com", "contact": "556",
	})
	user := decodeBody[model.User](t, resp)

	resp = postJSON(t, server.URL+"/api/marketplace", map[string]any{
		"user_id":  user.ID,
		"title":    "Desk Lamp",
		"category": "lamp",
		"price":    15.0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	item := decodeBody[model.MarketplaceItem](t, resp)

	// Default listing shows available items only.
	resp, _ = http.Get(server.URL + "/api/marketplace")
	items := decodeBody[[]model.MarketplaceItem](t, resp)
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("expected the new item listed, got %+v", items)
	}

	resp = putJSON(t, server.URL+"/api/marketplace/1/status", map[string]string{"status": "sold"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Get(server.URL + "/api/marketplace")
	items = decodeBody[[]model.MarketplaceItem](t, resp)
	if len(items) != 0 {
		t.Errorf("expected sold item hidden by default, got %d items", len(items))
	}

	resp, _ = http.Get(server.URL + "/api/marketplace?status=sold")
	items = decodeBody[[]model.MarketplaceItem](t, resp)
	if len(items) != 1 {
		t.Errorf("expected sold item with explicit status filter, got %d items", len(items))
	}
}

func TestMarketplaceCreateUnknownOwner(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/marketplace", map[string]any{
		"user_id":  999,
		"title":    "Chair",
		"category": "chair",
		"price":    10.0,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown owner, got %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	server, _ := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/availabilities", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard allow-origin, got %q", got)
	}
}
