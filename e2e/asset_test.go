package e2e

import (
	"net/http"
	"testing"
)

func TestAssetByCampaign(t *testing.T) {
	ta := setupApp(t)
	campaignID, assetID := createCampaign(t, ta)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/campaigns/"+campaignID+"/asset", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["id"] != assetID {
		t.Errorf("expected asset %s, got %v", assetID, result["id"])
	}
}

func TestUpdateAsset_NestedMerge(t *testing.T) {
	ta := setupApp(t)
	_, assetID := createCampaign(t, ta)
	path := "/api/assets/" + assetID

	resp, err := doAuthRequest(t, ta.app, http.MethodPut, path, `{"captions": {"facebook": "Fly further"}}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, path, `{"newsletter": {"subject": "Miles await"}}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	captions := result["captions"].(map[string]interface{})
	newsletter := result["newsletter"].(map[string]interface{})
	if captions["facebook"] != "Fly further" {
		t.Errorf("expected earlier caption to survive, got %v", captions["facebook"])
	}
	if newsletter["subject"] != "Miles await" {
		t.Errorf("expected subject to be set, got %v", newsletter["subject"])
	}
}

func TestUpdateAsset_UnknownPath(t *testing.T) {
	ta := setupApp(t)
	_, assetID := createCampaign(t, ta)

	resp, err := doAuthRequest(t, ta.app, http.MethodPut, "/api/assets/"+assetID, `{"captions": {"myspace": "hi"}}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestListAndDeleteAssets(t *testing.T) {
	ta := setupApp(t)
	_, assetID := createCampaign(t, ta)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/assets", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	if list := parseJSONArray(t, resp); len(list) != 1 {
		t.Errorf("expected one asset set, got %d", len(list))
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/assets/"+assetID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNoContent)

	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/assets/"+assetID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}
