package usecase

import (
	"context"
	"time"
)

// HealthProbe reports on one dependency. A nil error means healthy.
type HealthProbe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	probes  map[string]HealthProbe
	timeout time.Duration
}

// NewHealthUsecase checks each named probe on every call. The overall status
// is "ok" only when all probes pass.
func NewHealthUsecase(probes map[string]HealthProbe) HealthUsecase {
	return &healthUsecase{probes: probes, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status": "ok",
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	for name, probe := range u.probes {
		if err := probe(ctx); err != nil {
			result[name] = "unavailable: " + err.Error()
			result["status"] = "degraded"
			continue
		}
		result[name] = "ok"
	}
	return result
}
