package usecase

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-screening-backend/pkg/redis"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]any
}

type healthUsecase struct {
	db       *pgxpool.Pool
	provider string
	storage  string
}

// NewHealthUsecase reports liveness plus the runtime mode the server
// was started in. db is nil when the file store is active.
func NewHealthUsecase(db *pgxpool.Pool, provider, storage string) HealthUsecase {
	return &healthUsecase{db: db, provider: provider, storage: storage}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]any {
	out := map[string]any{
		"status":   "ok",
		"provider": u.provider,
		"storage":  u.storage,
	}

	if u.db != nil {
		if err := u.db.Ping(ctx); err != nil {
			out["database"] = "unreachable"
			out["status"] = "degraded"
		} else {
			out["database"] = "ok"
		}
	}

	if !redis.IsAvailable() {
		out["redis"] = "disabled"
		return out
	}
	if err := redis.HealthCheck(ctx); err != nil {
		out["redis"] = "unreachable"
		out["status"] = "degraded"
	} else {
		out["redis"] = "ok"
	}
	return out
}
