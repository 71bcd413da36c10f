package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

func TestBlogLifecycle(t *testing.T) {
	baseURL := os.Getenv("INTEGRATION_BASE_URL")
	if baseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration test")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	suffix := time.Now().UnixNano()
	aliceEmail := fmt.Sprintf("alice_%d@example.com", suffix)
	bobEmail := fmt.Sprintf("bob_%d@example.com", suffix)
	password := "Passw0rd!"

	// 1. Register both users.
	for _, reg := range []map[string]interface{}{
		{"name": "Alice", "email": aliceEmail, "password": password},
		{"name": "Bob", "email": bobEmail, "password": password},
	} {
		if _, err := requestJSON(client, http.MethodPost, baseURL+"/api/register", reg, "", http.StatusOK); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}

	// 2. Duplicate registration is rejected.
	dup := map[string]interface{}{"name": "Alice", "email": aliceEmail, "password": password}
	if _, err := requestJSON(client, http.MethodPost, baseURL+"/api/register", dup, "", http.StatusBadRequest); err != nil {
		t.Fatalf("duplicate register: %v", err)
	}

	// 3. Login both.
	aliceLogin, err := requestJSON(client, http.MethodPost, baseURL+"/api/login",
		map[string]interface{}{"email": aliceEmail, "password": password}, "", http.StatusOK)
	if err != nil {
		t.Fatalf("alice login failed: %v", err)
	}
	aliceToken := aliceLogin["token"].(string)
	bobLogin, err := requestJSON(client, http.MethodPost, baseURL+"/api/login",
		map[string]interface{}{"email": bobEmail, "password": password}, "", http.StatusOK)
	if err != nil {
		t.Fatalf("bob login failed: %v", err)
	}
	bobToken := bobLogin["token"].(string)

	// 4. Alice creates a post.
	created, err := requestJSON(client, http.MethodPost, baseURL+"/api/posts",
		map[string]interface{}{"title": "Hello", "description": "first post"}, aliceToken, http.StatusOK)
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	postID := fmt.Sprintf("%.0f", created["id"].(float64))
	postURL := baseURL + "/api/posts/" + postID

	// 5. Bob may comment but not update.
	if _, err := requestJSON(client, http.MethodPost, postURL+"/comments",
		map[string]interface{}{"body": "nice post"}, bobToken, http.StatusCreated); err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	update := map[string]interface{}{"title": "hijack", "description": "x"}
	if _, err := requestJSON(client, http.MethodPut, postURL, update, bobToken, http.StatusForbidden); err != nil {
		t.Fatalf("non-author update: %v", err)
	}

	// 6. Alice updates her post.
	update = map[string]interface{}{"title": "Hello v2", "description": "first post"}
	if _, err := requestJSON(client, http.MethodPut, postURL, update, aliceToken, http.StatusOK); err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	fetched, err := requestJSON(client, http.MethodGet, postURL, nil, "", http.StatusOK)
	if err != nil {
		t.Fatalf("get post failed: %v", err)
	}
	if fetched["title"] != "Hello v2" {
		t.Fatalf("expected updated title, got %v", fetched["title"])
	}

	// 7. Alice deletes; the post and its comments are gone.
	if _, err := requestJSON(client, http.MethodDelete, postURL, nil, aliceToken, http.StatusOK); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := requestJSON(client, http.MethodGet, postURL, nil, "", http.StatusNotFound); err != nil {
		t.Fatalf("deleted post still readable: %v", err)
	}
}

func requestJSON(client *http.Client, method, url string, body interface{}, token string, expectedStatus int) (map[string]interface{}, error) {
	var buf *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buf = bytes.NewBuffer(data)
	} else {
		buf = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, url, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != expectedStatus {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}
