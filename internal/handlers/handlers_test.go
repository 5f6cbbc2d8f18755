package handlers

import (
	"math"
	"net/http"
	"testing"
)

func TestAuthEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("register and login round-trip", func(t *testing.T) {
		token, _ := registerUser(t, env, "alice@example.com", "Alice", "+911")

		resp := performRequest(t, env.app, http.MethodGet, "/api/auth/me", nil, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		if data["email"] != "alice@example.com" || data["displayName"] != "Alice" {
			t.Errorf("unexpected profile: %+v", data)
		}

		resp = performJSONRequest(t, env.app, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ALICE@example.com",
			"password": "password123",
		}, nil)
		assertStatus(t, resp, http.StatusOK)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/register", map[string]any{
			"email":       "alice@example.com",
			"displayName": "Alice Again",
			"password":    "password123",
		}, nil)
		assertStatus(t, resp, http.StatusConflict)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/register", map[string]any{
			"email":       "weak@example.com",
			"displayName": "Weak",
			"password":    "short",
		}, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "alice@example.com",
			"password": "not-the-password",
		}, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("profile update", func(t *testing.T) {
		token, _ := registerUser(t, env, "bob@example.com", "Bob", "+912")

		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/auth/me", map[string]any{
			"displayName": "Bobby",
			"phoneNumber": "+9122",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		if data["displayName"] != "Bobby" {
			t.Errorf("profile not updated: %+v", data)
		}
	})

	t.Run("protected routes demand a token", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/auth/me", nil, nil)
		assertStatus(t, resp, http.StatusUnauthorized)

		resp = performRequest(t, env.app, http.MethodGet, "/api/groups/", nil, map[string]string{
			"Authorization": "Bearer not-a-real-token",
		})
		assertStatus(t, resp, http.StatusUnauthorized)
	})
}

func TestGroupEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	aliceToken, aliceID := registerUser(t, env, "alice@example.com", "Alice", "+911")
	bobToken, _ := registerUser(t, env, "bob@example.com", "Bob", "+912")

	var groupID string

	t.Run("create group with phone members", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/", map[string]any{
			"name":        "Goa Trip",
			"description": "beach house",
			"members": []map[string]any{
				{"phoneNumber": "+912", "displayName": "Bob"},
				{"phoneNumber": "+913", "displayName": "Charlie"},
			},
		}, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusCreated)

		data := dataField(t, decodeJSONMap(t, resp))
		groupID, _ = data["id"].(string)
		if groupID == "" {
			t.Fatalf("expected group ID in response: %+v", data)
		}
		members, _ := data["members"].(map[string]any)
		if len(members) != 3 {
			t.Errorf("expected 3 members, got %d", len(members))
		}
		if _, ok := members[aliceID]; !ok {
			t.Error("creator missing from members")
		}
	})

	t.Run("members can fetch, outsiders cannot", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID, nil, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusOK)

		outsiderToken, _ := registerUser(t, env, "carol@example.com", "Carol", "+918")
		resp = performRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID, nil, authHeaders(outsiderToken))
		assertStatus(t, resp, http.StatusForbidden)
	})

	t.Run("list shows memberships", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/", nil, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusOK)
		body := decodeJSONMap(t, resp)
		groups, _ := body["data"].([]any)
		if len(groups) != 1 {
			t.Errorf("expected 1 group for Bob, got %d", len(groups))
		}
	})

	t.Run("only admins can rename", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/groups/"+groupID, map[string]any{
			"name": "Hijacked",
		}, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusForbidden)

		resp = performJSONRequest(t, env.app, http.MethodPut, "/api/groups/"+groupID, map[string]any{
			"name": "Goa Trip 2026",
		}, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusOK)
	})

	t.Run("add members endpoint", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/members", map[string]any{
			"members": []map[string]any{{"phoneNumber": "+914", "displayName": "Dana"}},
		}, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		members, _ := data["members"].(map[string]any)
		if _, ok := members["+914"]; !ok {
			t.Errorf("provisional member missing: %+v", members)
		}
	})

	t.Run("invite endpoint reports outcome", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/invite", map[string]any{
			"phoneNumber": "+915",
			"displayName": "Eve",
		}, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		if data["outcome"] != "sms_sent" {
			t.Errorf("outcome = %v, want sms_sent", data["outcome"])
		}

		resp = performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/invite", map[string]any{
			"phoneNumber": "+915",
		}, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusConflict)
	})

	t.Run("unknown group is 404", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/nope", nil, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusNotFound)
	})
}

func TestTransactionAndOverviewEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	aliceToken, aliceID := registerUser(t, env, "alice@example.com", "Alice", "+911")
	bobToken, bobID := registerUser(t, env, "bob@example.com", "Bob", "+912")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/", map[string]any{
		"name":    "Trip",
		"members": []map[string]any{{"phoneNumber": "+912", "displayName": "Bob"}},
	}, authHeaders(aliceToken))
	assertStatus(t, resp, http.StatusCreated)
	groupID, _ := dataField(t, decodeJSONMap(t, resp))["id"].(string)

	var txnID string

	t.Run("record expense", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/transactions", map[string]any{
			"type":        "expense",
			"amount":      90,
			"description": "Hotel",
		}, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusCreated)
		data := dataField(t, decodeJSONMap(t, resp))
		txnID, _ = data["id"].(string)
		if data["category"] != "General" {
			t.Errorf("category = %v, want General", data["category"])
		}
	})

	t.Run("record second expense and settlement", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/transactions", map[string]any{
			"type":        "expense",
			"amount":      30,
			"description": "Taxi",
		}, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusCreated)

		resp = performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/transactions", map[string]any{
			"type":     "settlement",
			"amount":   20,
			"toUserId": aliceID,
		}, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusCreated)
	})

	t.Run("list returns all three", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID+"/transactions", nil, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusOK)
		body := decodeJSONMap(t, resp)
		txns, _ := body["data"].([]any)
		if len(txns) != 3 {
			t.Errorf("expected 3 transactions, got %d", len(txns))
		}
	})

	t.Run("rejects bad amounts", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/transactions", map[string]any{
			"type":   "expense",
			"amount": -5,
		}, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("only the creator can edit", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/transactions/"+txnID, map[string]any{
			"amount":      95,
			"description": "Hotel incl. tax",
		}, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusForbidden)

		resp = performJSONRequest(t, env.app, http.MethodPut, "/api/transactions/"+txnID, map[string]any{
			"amount":      95,
			"description": "Hotel incl. tax",
			"category":    "Travel",
		}, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusOK)
	})

	t.Run("overview reflects the ledger", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID+"/overview", nil, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))

		total, _ := data["totalExpense"].(float64)
		if math.Abs(total-125) > 0.01 {
			t.Errorf("total_expense = %.2f, want 125", total)
		}

		members, _ := data["members"].([]any)
		if len(members) != 2 {
			t.Fatalf("expected 2 member rows, got %d", len(members))
		}
		standings := map[string]string{}
		for _, raw := range members {
			row, _ := raw.(map[string]any)
			id, _ := row["memberId"].(string)
			standing, _ := row["standing"].(string)
			standings[id] = standing
		}
		if standings[aliceID] != "owes_you" || standings[bobID] != "you_owe" {
			t.Errorf("unexpected standings: %+v", standings)
		}

		chart, _ := data["chart"].(map[string]any)
		labels, _ := chart["labels"].([]any)
		if len(labels) != 2 {
			t.Errorf("expected 2 chart labels, got %v", labels)
		}
	})

	t.Run("only the creator can delete", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/transactions/"+txnID, nil, authHeaders(bobToken))
		assertStatus(t, resp, http.StatusForbidden)

		resp = performRequest(t, env.app, http.MethodDelete, "/api/transactions/"+txnID, nil, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusOK)

		resp = performRequest(t, env.app, http.MethodDelete, "/api/transactions/"+txnID, nil, authHeaders(aliceToken))
		assertStatus(t, resp, http.StatusNotFound)
	})

	t.Run("health endpoint is public", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/health", nil, nil)
		assertStatus(t, resp, http.StatusOK)
	})
}
