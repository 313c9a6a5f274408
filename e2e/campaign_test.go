package e2e

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
)

const validCampaignBody = `{
	"name": "Spring Sale",
	"bank_product": "Credit Card",
	"theme": "Travel Rewards",
	"target_audience": "Students (18-24 years old)",
	"description": "Earn double miles on every booking"
}`

// createCampaign posts the valid brief and returns the campaign and asset ids.
func createCampaign(t *testing.T, ta *testApp) (string, string) {
	t.Helper()

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns", validCampaignBody)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	result := parseJSON(t, resp)
	campaign, _ := result["campaign"].(map[string]interface{})
	asset, _ := result["asset"].(map[string]interface{})
	if campaign == nil || asset == nil {
		t.Fatalf("expected campaign and asset in response, got %v", result)
	}
	return campaign["id"].(string), asset["id"].(string)
}

func TestCreateCampaign_Success(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns", validCampaignBody)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusCreated)

	result := parseJSON(t, resp)
	campaign := result["campaign"].(map[string]interface{})
	if campaign["status"] != "generating" {
		t.Errorf("expected status 'generating', got %v", campaign["status"])
	}
	for _, f := range model.StatusFields {
		if campaign[f] != "pending" {
			t.Errorf("expected %s 'pending', got %v", f, campaign[f])
		}
	}
	asset := result["asset"].(map[string]interface{})
	if asset["campaign_id"] != campaign["id"] {
		t.Errorf("expected asset to reference campaign %v, got %v", campaign["id"], asset["campaign_id"])
	}
	if n := ta.queue.count(service.TaskTypeWebhook); n != 1 {
		t.Errorf("expected one webhook task, got %d", n)
	}
}

func TestCreateCampaign_NoAuth(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodPost, "/api/campaigns", validCampaignBody, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestCreateCampaign_InvalidBody(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns", `{"name": "   "}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)

	body := parseJSON(t, resp)
	details := body["error"].(map[string]interface{})["details"].(map[string]interface{})
	for _, field := range []string{"name", "theme", "target_audience"} {
		if details[field] != "required" {
			t.Errorf("expected %s to be required, got %v", field, details[field])
		}
	}
	if n := ta.queue.count(service.TaskTypeWebhook); n != 0 {
		t.Errorf("expected no webhook task, got %d", n)
	}
}

func TestListCampaigns_SortAndScope(t *testing.T) {
	ta := setupApp(t)

	for _, name := range []string{"Bravo", "Alpha"} {
		body := strings.Replace(validCampaignBody, "Spring Sale", name, 1)
		resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns", body)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		assertStatus(t, resp, http.StatusCreated)
	}

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/campaigns?sort=name", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	list := parseJSONArray(t, resp)
	if len(list) != 2 || list[0]["name"] != "Alpha" {
		t.Errorf("expected [Alpha Bravo], got %v", list)
	}

	resp, err = doRequest(ta.app, http.MethodGet, "/api/campaigns", "", map[string]string{
		"Authorization": "Bearer " + generateTokenFor(t, "someone-else"),
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if other := parseJSONArray(t, resp); len(other) != 0 {
		t.Errorf("expected no campaigns for another user, got %d", len(other))
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/campaigns?sort=colour", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestUpdateCampaign_CompletionGuard(t *testing.T) {
	ta := setupApp(t)
	id, _ := createCampaign(t, ta)
	path := "/api/campaigns/" + id

	resp, err := doAuthRequest(t, ta.app, http.MethodPut, path, `{"status": "completed"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)
	if code := errorCode(t, resp); code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", code)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, path, `{"captions_status": "done"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, path, `{"captions_status": "completed", "theme": "Cashback"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	updated := parseJSON(t, resp)
	if updated["captions_status"] != "completed" || updated["theme"] != "Cashback" {
		t.Errorf("expected merged update, got %v", updated)
	}
}

func TestGetCampaign_NotFound(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/campaigns/missing", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusNotFound)
}

func TestDeleteCampaign_RemovesAsset(t *testing.T) {
	ta := setupApp(t)
	id, assetID := createCampaign(t, ta)

	resp, err := doAuthRequest(t, ta.app, http.MethodDelete, "/api/campaigns/"+id, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNoContent)

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/assets/"+assetID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}

func TestAwaitCampaign(t *testing.T) {
	ta := setupApp(t)
	id, _ := createCampaign(t, ta)
	path := "/api/campaigns/" + id

	resp, err := doAuthRequest(t, ta.app, http.MethodPut, path, `{"captions_status": "completed", "images_status": "error"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"already completed", "field=captions_status", http.StatusOK, ""},
		{"error sentinel", "field=images_status", http.StatusUnprocessableEntity, "STAGE_FAILED"},
		{"timeout", "field=video_status&timeout=50ms", http.StatusGatewayTimeout, "STAGE_TIMEOUT"},
		{"unknown field", "field=colour_status", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad value", "field=video_status&value=done", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad timeout", "field=video_status&timeout=soon", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := doAuthRequest(t, ta.app, http.MethodGet, fmt.Sprintf("%s/await?%s", path, tt.query), "")
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			assertStatus(t, resp, tt.status)
			if tt.code != "" {
				if code := errorCode(t, resp); code != tt.code {
					t.Errorf("expected %s, got %s", tt.code, code)
				}
			}
		})
	}
}
