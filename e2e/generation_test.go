package e2e

import (
	"net/http"
	"testing"

	"github.com/genaimarketing/api/internal/service"
)

func startGeneration(t *testing.T, ta *testApp) string {
	t.Helper()

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/generations/start", validCampaignBody)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusAccepted)

	result := parseJSON(t, resp)
	jobID, _ := result["jobId"].(string)
	if jobID == "" {
		t.Fatal("expected 'jobId' in response")
	}
	if result["status"] != "queued" {
		t.Errorf("expected status 'queued', got %v", result["status"])
	}
	return jobID
}

func TestGenerationStart_Success(t *testing.T) {
	ta := setupApp(t)

	startGeneration(t, ta)

	if n := ta.queue.count(service.TaskTypeGeneration); n != 1 {
		t.Errorf("expected one generation task, got %d", n)
	}
}

func TestGenerationStart_NoAuth(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodPost, "/api/generations/start", validCampaignBody, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestGenerationStart_InvalidBody(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/generations/start", `{"name": "Only a name"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	if n := ta.queue.count(service.TaskTypeGeneration); n != 0 {
		t.Errorf("expected no generation task, got %d", n)
	}
}

func TestGenerationStatus(t *testing.T) {
	ta := setupApp(t)
	jobID := startGeneration(t, ta)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/generations/status/"+jobID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["status"] != "queued" {
		t.Errorf("expected status 'queued', got %v", result["status"])
	}

	resp, err = doRequest(ta.app, http.MethodGet, "/api/generations/status/"+jobID, "", map[string]string{
		"Authorization": "Bearer " + generateTokenFor(t, "someone-else"),
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}

func TestGenerationCancel(t *testing.T) {
	ta := setupApp(t)
	jobID := startGeneration(t, ta)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/generations/cancel/"+jobID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["status"] != "canceled" {
		t.Errorf("expected status 'canceled', got %v", result["status"])
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodPost, "/api/generations/cancel/"+jobID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusConflict)
}

func TestGenerationStatus_NotFound(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/generations/status/missing", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusNotFound)
}
