package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guptaji3010/Biovalley-AI-Scanner/config"
	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

const testImage = "data:image/jpeg;base64,dGVzdA=="

// StubScanAnalyzer is a canned implementation of the scan usecase
type StubScanAnalyzer struct {
	diagnosis *domain.Diagnosis
	err       error
	lastImage string
}

func (s *StubScanAnalyzer) AnalyzeImage(ctx context.Context, imageDataURL string) (*domain.Diagnosis, error) {
	s.lastImage = imageDataURL
	if s.err != nil {
		return nil, s.err
	}
	return s.diagnosis, nil
}

// setupTestRouter creates a test router backed by the given stub
func setupTestRouter(stub *StubScanAnalyzer) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Groq: config.GroqConfig{
			APIKey: "test-api-key",
		},
		Cache: config.CacheConfig{
			Type: "memory",
		},
	}

	handler := NewHandler(stub)
	return SetupRouter(cfg, handler)
}

func postScan(router *gin.Engine, payload string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/api/v1/scan/analyze", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(&StubScanAnalyzer{})

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "biovalley-scanner" {
			t.Errorf("service = %v, want biovalley-scanner", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(&StubScanAnalyzer{})

		methods := []string{"POST", "PUT", "DELETE", "PATCH"}

		for _, method := range methods {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

// TestAnalyzeScanEndpoint tests the scan analysis endpoint
func TestAnalyzeScanEndpoint(t *testing.T) {
	t.Run("returns diagnosis for a valid image", func(t *testing.T) {
		stub := &StubScanAnalyzer{
			diagnosis: &domain.Diagnosis{
				AnalysisText: "Mild dryness on the cheeks with some flaking.",
				Recommendations: []domain.Recommendation{
					{
						Name:        "Calendula Mimosa Body Lotion",
						Description: "Deep hydration for dry skin",
						URL:         "https://bio-valley.com/products/calendula-mimosa-body-lotion",
						Price:       "₹399",
					},
				},
			},
		}
		router := setupTestRouter(stub)

		w := postScan(router, `{"image":"`+testImage+`"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var response domain.Diagnosis
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response.AnalysisText != "Mild dryness on the cheeks with some flaking." {
			t.Errorf("analysis = %q, want the stubbed analysis", response.AnalysisText)
		}
		if len(response.Recommendations) != 1 {
			t.Fatalf("len(recommendations) = %d, want 1", len(response.Recommendations))
		}
		if response.Recommendations[0].Name != "Calendula Mimosa Body Lotion" {
			t.Errorf("recommendation name = %q, want Calendula Mimosa Body Lotion", response.Recommendations[0].Name)
		}

		if stub.lastImage != testImage {
			t.Errorf("service received image %q, want %q", stub.lastImage, testImage)
		}
	})

	t.Run("rejects missing image", func(t *testing.T) {
		router := setupTestRouter(&StubScanAnalyzer{})

		w := postScan(router, `{}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "image is required" {
			t.Errorf("error = %v, want 'image is required'", response["error"])
		}
	})

	t.Run("rejects malformed JSON body", func(t *testing.T) {
		router := setupTestRouter(&StubScanAnalyzer{})

		w := postScan(router, `{"image":`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects non data-URL image", func(t *testing.T) {
		stub := &StubScanAnalyzer{}
		router := setupTestRouter(stub)

		w := postScan(router, `{"image":"just some text"}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "A base64 image data URL is required." {
			t.Errorf("error = %v, want data URL message", response["error"])
		}

		if stub.lastImage != "" {
			t.Error("service was called for an invalid image")
		}
	})

	t.Run("rejects oversized image", func(t *testing.T) {
		stub := &StubScanAnalyzer{}
		router := setupTestRouter(stub)

		// Base64 payload whose decoded size estimate exceeds 4MB
		oversized := "data:image/jpeg;base64," + strings.Repeat("A", (maxImageBytes/3+2)*4)

		w := postScan(router, `{"image":"`+oversized+`"}`)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "File size too large. Please upload an image under 4MB." {
			t.Errorf("error = %v, want size limit message", response["error"])
		}

		if stub.lastImage != "" {
			t.Error("service was called for an oversized image")
		}
	})

	t.Run("maps model failure to bad gateway", func(t *testing.T) {
		stub := &StubScanAnalyzer{
			err: errors.New("model invocation failed: API Error: 401 - Invalid API Key. If this persists, the API key may be invalid or quota exceeded."),
		}
		router := setupTestRouter(stub)

		w := postScan(router, `{"image":"`+testImage+`"}`)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadGateway)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		errorMsg, ok := response["error"].(string)
		if !ok {
			t.Fatalf("error field is not a string: %v", response["error"])
		}
		if !strings.Contains(errorMsg, "Invalid API Key") {
			t.Errorf("error = %q, want to contain the upstream message", errorMsg)
		}
	})

	t.Run("maps invalid request error to bad request", func(t *testing.T) {
		stub := &StubScanAnalyzer{err: domain.ErrInvalidRequest}
		router := setupTestRouter(stub)

		w := postScan(router, `{"image":"`+testImage+`"}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("validates HTTP method", func(t *testing.T) {
		router := setupTestRouter(&StubScanAnalyzer{})

		methods := []string{"GET", "PUT", "DELETE", "PATCH"}

		for _, method := range methods {
			req, _ := http.NewRequest(method, "/api/v1/scan/analyze", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		wantErr error
	}{
		{
			name:    "valid jpeg data URL",
			image:   "data:image/jpeg;base64,dGVzdA==",
			wantErr: nil,
		},
		{
			name:    "valid png data URL",
			image:   "data:image/png;base64,dGVzdA==",
			wantErr: nil,
		},
		{
			name:    "empty image",
			image:   "",
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "missing data URL prefix",
			image:   "dGVzdA==",
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "non-image data URL",
			image:   "data:text/plain;base64,dGVzdA==",
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "oversized payload",
			image:   "data:image/jpeg;base64," + strings.Repeat("A", (maxImageBytes/3+2)*4),
			wantErr: domain.ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateImage(tt.image)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateImage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
