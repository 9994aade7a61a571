package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	mockcore "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	t.Run("should echo a caller supplied id", func(t *testing.T) {
		// Arrange
		router := gin.New()
		router.Use(RequestID())
		var seen string
		router.GET("/", func(c *gin.Context) { seen = c.GetString(RequestIDKey) })

		// Act
		rec := serve(router, http.MethodGet, "/", http.Header{RequestIDHeader: {"abc-123"}})

		// Assert
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("should replace an oversized id", func(t *testing.T) {
		// Arrange
		router := gin.New()
		router.Use(RequestID())
		router.GET("/", func(c *gin.Context) {})

		// Act
		rec := serve(router, http.MethodGet, "/", http.Header{RequestIDHeader: {strings.Repeat("x", 500)}})

		// Assert
		assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	})
}

func TestErrorHandler(t *testing.T) {
	t.Run("should turn a panic into a 500 error body", func(t *testing.T) {
		// Arrange
		logger := new(mockcore.MockLogger)
		logger.On("Error", "Panic recovered in API request", mock.MatchedBy(func(f map[string]any) bool {
			return f["error"] == "kaboom"
		})).Once()
		router := gin.New()
		router.Use(RequestID(), ErrorHandler(logger))
		router.GET("/", func(c *gin.Context) { panic("kaboom") })

		// Act
		rec := serve(router, http.MethodGet, "/", nil)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"status":"error","message":"internal server error"}`, rec.Body.String())
		logger.AssertExpectations(t)
	})
}

func TestLogger(t *testing.T) {
	t.Run("should log server errors at warn", func(t *testing.T) {
		// Arrange
		logger := new(mockcore.MockLogger)
		logger.On("Warn", "Request processed", mock.MatchedBy(func(f map[string]any) bool {
			return f["status"] == http.StatusBadGateway && f["status_text"] == "Server Error"
		})).Once()
		router := gin.New()
		router.Use(Logger(logger, mockcore.NewFixedTimeProvider(time.Unix(0, 0))))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

		// Act
		serve(router, http.MethodGet, "/", nil)

		// Assert
		logger.AssertExpectations(t)
	})

	t.Run("should log other responses at info", func(t *testing.T) {
		// Arrange
		logger := new(mockcore.MockLogger)
		logger.On("Info", "Request processed", mock.Anything).Once()
		router := gin.New()
		router.Use(Logger(logger, mockcore.NewFixedTimeProvider(time.Unix(0, 0))))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		// Act
		serve(router, http.MethodGet, "/", nil)

		// Assert
		logger.AssertExpectations(t)
		logger.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything)
	})
}

func TestCORS(t *testing.T) {
	t.Run("should answer preflight without reaching the handler", func(t *testing.T) {
		// Arrange
		router := gin.New()
		router.Use(CORS())
		called := false
		router.OPTIONS("/api/saldos", func(c *gin.Context) { called = true })

		// Act
		rec := serve(router, http.MethodOptions, "/api/saldos", nil)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.False(t, called)
	})
}
