package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BlendB5/OnTrackr-sub001/internal/testutil"
)

func newRouter(c *Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health/live", c.LiveHandler())
	router.GET("/health/ready", c.ReadyHandler())
	router.GET("/health", c.FullHandler())
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveHandlerIgnoresChecks(t *testing.T) {
	c := NewChecker("v1").WithCheck("reminders", func(context.Context) error {
		return errors.New("not loaded")
	})

	w := get(newRouter(c), "/health/live")
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
	}
}

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name       string
		checkErr   error
		wantStatus int
		wantHealth Status
	}{
		{name: "healthy", checkErr: nil, wantStatus: http.StatusOK, wantHealth: StatusHealthy},
		{name: "unhealthy", checkErr: errors.New("not loaded"), wantStatus: http.StatusServiceUnavailable, wantHealth: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker("v1").WithCheck("reminders", func(context.Context) error {
				return tt.checkErr
			})

			w := get(newRouter(c), "/health/ready")
			if w.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", w.Code, tt.wantStatus)
			}

			var status HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if status.Status != tt.wantHealth {
				t.Errorf("overall: got %q, want %q", status.Status, tt.wantHealth)
			}
			if status.Checks["reminders"].Status != tt.wantHealth {
				t.Errorf("reminders check: got %q", status.Checks["reminders"].Status)
			}
			if status.Version != "v1" {
				t.Errorf("version: got %q", status.Version)
			}
		})
	}
}

func TestFullHandlerIncludesDetails(t *testing.T) {
	c := NewChecker("v1").WithDetail("channels", func(context.Context) any {
		return map[string]string{"telegram": "granted"}
	})

	w := get(newRouter(c), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}

	var body struct {
		Details map[string]map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Details["channels"]["telegram"] != "granted" {
		t.Errorf("unexpected details: %v", body.Details)
	}
}

func TestWithRedisNilClientIsSkipped(t *testing.T) {
	c := NewChecker("v1").WithRedis(nil)

	status := c.Check(context.Background())
	if _, ok := status.Checks["redis"]; ok {
		t.Error("expected no redis check for a nil client")
	}
}

func TestWithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	status := NewChecker("v1").WithRedis(client).Check(ctx)
	if status.Status != StatusHealthy || status.Checks["redis"].Status != StatusHealthy {
		t.Errorf("expected healthy redis, got %+v", status)
	}
}
