package e2e

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/genaimarketing/api/internal/model"
)

// createMultipartCreativeRequest builds a multipart/form-data request with a fake creative file.
func createMultipartCreativeRequest(t *testing.T, token, assetID, slot, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if slot != "" {
		_ = writer.WriteField("slot", slot)
	}

	if data != nil {
		partHeader := make(textproto.MIMEHeader)
		partHeader.Set("Content-Disposition", `form-data; name="file"; filename="creative.bin"`)
		partHeader.Set("Content-Type", contentType)
		part, err := writer.CreatePart(partHeader)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		_, _ = part.Write(data)
	}

	writer.Close()

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/assets/%s/creative", assetID), &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

func seedAsset(t *testing.T, ta *testApp) *model.AssetSet {
	t.Helper()
	asset, err := ta.store.CreateAsset(context.Background(), model.Principal{UserID: testUserID}, model.NewAssetSet("c-1"))
	if err != nil {
		t.Fatalf("failed to seed asset: %v", err)
	}
	return asset
}

func TestUploadCreative_Success(t *testing.T) {
	ta := setupApp(t)
	asset := seedAsset(t, ta)

	pngHeader := []byte("\x89PNG\r\n\x1a\n")
	req := createMultipartCreativeRequest(t, generateToken(t), asset.ID, string(model.SlotBillboard1), "image/png", append(pngHeader, make([]byte, 512)...))

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusCreated)

	result := parseJSON(t, resp)
	fileURL, _ := result["fileUrl"].(string)
	if !strings.HasSuffix(fileURL, ".png") {
		t.Errorf("expected png fileUrl, got %q", fileURL)
	}

	stored, err := ta.store.GetAsset(context.Background(), model.Principal{UserID: testUserID}, asset.ID)
	if err != nil {
		t.Fatalf("failed to read asset: %v", err)
	}
	if stored.Ads.Billboard.BillBoard1 != fileURL {
		t.Errorf("expected slot to hold %q, got %q", fileURL, stored.Ads.Billboard.BillBoard1)
	}
}

func TestUploadCreative_NoAuth(t *testing.T) {
	ta := setupApp(t)
	asset := seedAsset(t, ta)

	req := createMultipartCreativeRequest(t, "", asset.ID, string(model.SlotImage), "image/png", []byte("png"))

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestUploadCreative_MissingFile(t *testing.T) {
	ta := setupApp(t)
	asset := seedAsset(t, ta)

	req := createMultipartCreativeRequest(t, generateToken(t), asset.ID, string(model.SlotImage), "", nil)

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestUploadCreative_WrongTypeForSlot(t *testing.T) {
	ta := setupApp(t)
	asset := seedAsset(t, ta)

	req := createMultipartCreativeRequest(t, generateToken(t), asset.ID, string(model.SlotVideo), "image/png", []byte("png"))

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestUploadCreative_ForeignAsset(t *testing.T) {
	ta := setupApp(t)
	asset := seedAsset(t, ta)

	req := createMultipartCreativeRequest(t, generateTokenFor(t, "someone-else"), asset.ID, string(model.SlotImage), "image/png", []byte("png"))

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusNotFound)
}
