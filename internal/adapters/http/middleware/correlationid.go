package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/zoo-service/internal/platform/logging"
)

const (
	// HeaderCorrelationID ties together every request of one keeper workflow,
	// for example registering an animal and then housing it.
	HeaderCorrelationID     = "X-Correlation-ID"
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID propagates X-Correlation-ID the same way RequestID handles
// request IDs.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderCorrelationID,
		contextKey:      ContextKeyCorrelationID,
		contextEnricher: logging.WithCorrelationID,
	})
}

// GetCorrelationID returns the correlation ID, or "" outside the middleware.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
