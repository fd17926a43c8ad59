package usecase

import (
	"context"
	"time"
)

// Probe checks one dependency; pool.Ping fits directly.
type Probe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	deps     map[string]Probe
	mailName string
}

// NewHealthUsecase reports on each named dependency. A nil Probe is reported as "not_configured".
func NewHealthUsecase(deps map[string]Probe, mailTransport string) HealthUsecase {
	return &healthUsecase{deps: deps, mailName: mailTransport}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status": "ok",
	}
	if u.mailName != "" {
		out["mail"] = u.mailName
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	for name, p := range u.deps {
		switch {
		case p == nil:
			out[name] = "not_configured"
		case p(ctx) != nil:
			out[name] = "down"
			out["status"] = "degraded"
		default:
			out[name] = "up"
		}
	}
	return out
}
