package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/hibiken/asynq"

	_ "github.com/genaimarketing/api/docs"
	"github.com/genaimarketing/api/internal/auth"
	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/handler"
	"github.com/genaimarketing/api/internal/middleware"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/internal/store"
)

const (
	testJWTSecret = "test-secret-for-e2e"
	testUserID    = "test-user-123"
)

// recordingQueue stands in for the asynq client
type recordingQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (q *recordingQueue) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: task.Type()}, nil
}

func (q *recordingQueue) count(taskType string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, t := range q.tasks {
		if t.Type() == taskType {
			n++
		}
	}
	return n
}

// memoryJobs keeps generation jobs in process
type memoryJobs struct {
	mu   sync.Mutex
	jobs map[string]model.Job
}

func (m *memoryJobs) SaveJob(ctx context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	return nil
}

func (m *memoryJobs) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, service.ErrJobNotFound
	}
	return &job, nil
}

func (m *memoryJobs) UpdateJob(ctx context.Context, jobID string, fn func(job *model.Job) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return service.ErrJobNotFound
	}
	if err := fn(&job); err != nil {
		return err
	}
	m.jobs[jobID] = job
	return nil
}

// testApp holds all components needed for testing
type testApp struct {
	app   *fiber.App
	store *store.Memory
	queue *recordingQueue
}

// setupApp creates a Fiber app with the same routes as main.go, backed by the in-memory
// store. R2 is unconfigured so uploads get mock URLs.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	records := store.NewMemory()
	queue := &recordingQueue{}
	waiter := generation.NewWaiter(generation.NewPollingWatcher(records))

	// Services
	campaignService := service.NewCampaignService(records, queue, waiter, nil)
	assetService := service.NewAssetService(records)
	uploadService := service.NewUploadService(nil, records, nil)
	generationService := service.NewGenerationService(&memoryJobs{jobs: map[string]model.Job{}}, queue, nil, nil)

	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(nil, testJWTSecret),
		Campaigns:   handler.NewCampaignHandler(campaignService, 2*time.Second),
		Assets:      handler.NewAssetHandler(assetService),
		Uploads:     handler.NewUploadHandler(uploadService),
		Generations: handler.NewGenerationHandler(generationService),
	}

	// Auth middleware: legacy HMAC only, no rate limits
	authMiddleware := middleware.NewLegacyAuthMiddleware(testJWTSecret)

	app := fiber.New(fiber.Config{
		BodyLimit: 120 * 1024 * 1024,
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"store":   "memory",
				"r2":      false,
				"auth":    true,
				"webhook": false,
			},
		})
	})
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)
	handler.RegisterRoutes(app, handlers, authMiddleware.Authenticate(), handler.Limits{})

	return &testApp{app: app, store: records, queue: queue}
}

// generateToken creates a legacy HMAC JWT token for the default test user.
func generateToken(t *testing.T) string {
	t.Helper()
	return generateTokenFor(t, testUserID)
}

func generateTokenFor(t *testing.T, userID string) string {
	t.Helper()
	p := model.Principal{UserID: userID, Email: "test@example.com", Name: "Test User"}
	signed, err := auth.IssueLegacyToken(p, testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return signed
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs an authenticated request.
func doAuthRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, error) {
	t.Helper()
	return doRequest(app, method, path, body, map[string]string{
		"Authorization": "Bearer " + generateToken(t),
	})
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// parseJSONArray parses a list response.
func parseJSONArray(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result []map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, body)
	}
	return result
}

// errorCode returns error.code from an error envelope.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body := parseJSON(t, resp)
	envelope, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := envelope["code"].(string)
	return code
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
