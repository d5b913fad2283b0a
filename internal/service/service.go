package service

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/address-book/internal/assistant"
	"gitlab.com/dirk.krummacker/address-book/internal/book"
	"gitlab.com/dirk.krummacker/address-book/internal/model"
	apimodel "gitlab.com/dirk.krummacker/address-book/pkg/model"
)

// mu guards directory. The address book itself is not safe for concurrent use, so every handler
// holds mu for as long as it touches the book or one of its records.
var mu sync.Mutex

// directory is the address book served by the router.
var directory *book.AddressBook

// logger receives one entry per request and every failed request.
var logger = zap.NewNop()

// metricSet holds the request counters and durations exposed on /metrics.
var metricSet = metrics.NewSet()

// now returns the date the birthdays report is computed for when the request does not name one.
var now = time.Now

// SetupDirectory makes b the address book served by the router. The logger may be nil.
func SetupDirectory(b *book.AddressBook, log *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	directory = b
	if log != nil {
		logger = log
	}
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. With requestLogging
// switched off only failed requests are logged.
func SetupHttpRouter(requestLogging bool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), meterRequests())
	if requestLogging {
		router.Use(logRequests())
	}
	router.GET("/contacts", findContacts)
	router.POST("/contacts", createContact)
	router.GET("/contacts/:name", findContactByName)
	router.DELETE("/contacts/:name", deleteContactByName)
	router.POST("/contacts/:name/phones", addPhone)
	router.PUT("/contacts/:name/phones/:phone", editPhone)
	router.DELETE("/contacts/:name/phones/:phone", deletePhone)
	router.PUT("/contacts/:name/birthday", setBirthday)
	router.GET("/birthdays", findBirthdays)
	router.GET("/metrics", writeMetrics)
	return router
}

// logRequests logs every request after it has been answered.
func logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("from", c.ClientIP()))
	}
}

// meterRequests counts requests and records their duration per route and status.
func meterRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := `{method="` + c.Request.Method + `",path="` + route + `",status="` +
			strconv.Itoa(c.Writer.Status()) + `"}`
		metricSet.GetOrCreateCounter("http_requests_total" + labels).Inc()
		metricSet.GetOrCreateHistogram("http_request_duration_seconds" + labels).UpdateDuration(start)
	}
}

// writeMetrics responds with the request metrics in the Prometheus text format.
//
// Example REST API call:
//
//	> curl http://localhost:8080/metrics
func writeMetrics(c *gin.Context) {
	c.Header("Content-Type", "text/plain; version=0.0.4")
	c.Status(http.StatusOK)
	metricSet.WritePrometheus(c.Writer)
}

// statusFor maps an error returned by the address book to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, book.ErrRecordNotFound), errors.Is(err, model.ErrPhoneNotFound):
		return http.StatusNotFound
	case errors.Is(err, book.ErrRecordAlreadyExists), errors.Is(err, model.ErrBirthdayAlreadySet):
		return http.StatusConflict
	case errors.Is(err, model.ErrEmptyField),
		errors.Is(err, model.ErrInvalidPhone),
		errors.Is(err, model.ErrInvalidDateFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError answers the request with the status and message belonging to err.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"message": assistant.Message(err)})
}

// toContact converts a record to its JSON form.
func toContact(r *model.Record) apimodel.Contact {
	phones := r.Phones()
	contact := apimodel.Contact{Name: r.Name().String(), Phones: make([]string, len(phones))}
	for i, p := range phones {
		contact.Phones[i] = p.String()
	}
	if birthday, ok := r.Birthday(); ok {
		s := birthday.String()
		contact.Birthday = &s
	}
	return contact
}
