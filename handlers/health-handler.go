package handlers

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivekpradhan736/task-tracker-backend/logging"
)

// HealthHandler reports liveness. The Mongo ping runs behind a circuit
// breaker so a down database does not get hammered by probes.
type HealthHandler struct {
	client  *mongo.Client
	breaker *gobreaker.CircuitBreaker
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MongoHealthCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &HealthHandler{client: client, breaker: breaker}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_, err := h.breaker.Execute(func() (interface{}, error) {
		return nil, h.client.Ping(r.Context(), nil)
	})
	if err != nil {
		logging.Logger.Warnf("Health check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
