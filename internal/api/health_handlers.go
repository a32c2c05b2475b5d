package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// CatalogHealth summarizes the stored collection.
type CatalogHealth struct {
	Cards        int        `json:"cards" doc:"Number of stored cards"`
	LastImportAt *time.Time `json:"last_import_at,omitempty" doc:"Time of the last bulk import"`
	LastSource   string     `json:"last_import_source,omitempty" doc:"File of the last bulk import"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
	Catalog    *CatalogHealth             `json:"catalog,omitempty" doc:"Collection summary when the database is reachable"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	db := s.checkDatabase(ctx)
	resp := HealthResponse{
		Status:     "healthy",
		Components: map[string]ComponentHealth{"database": db},
	}

	if db.Status != "healthy" {
		resp.Status = "unhealthy"
		return &HealthOutput{Body: resp}, nil
	}

	resp.Catalog = s.catalogSummary(ctx)
	return &HealthOutput{Body: resp}, nil
}

// checkDatabase verifies Badger answers a read transaction.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.store == nil {
		return ComponentHealth{Status: "unhealthy", Message: "database not configured"}
	}

	start := time.Now()
	err := s.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		s.logger.Warn("Health check database ping failed", "error", err)
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "database read failed",
		}
	}
	return ComponentHealth{Status: "healthy", Latency: latency.String()}
}

func (s *Server) catalogSummary(ctx context.Context) *CatalogHealth {
	summary := &CatalogHealth{}

	n, err := s.store.CountCards(ctx)
	if err != nil {
		s.logger.Warn("Health check card count failed", "error", err)
		return nil
	}
	summary.Cards = n

	info, err := s.store.LastImport(ctx)
	switch {
	case err == nil:
		summary.LastImportAt = &info.ImportedAt
		summary.LastSource = info.Source
	case !errors.Is(err, store.ErrNotFound):
		s.logger.Warn("Health check import lookup failed", "error", err)
	}
	return summary
}
