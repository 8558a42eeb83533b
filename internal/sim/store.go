package sim

import (
	"context"

	"github.com/udisondev/herobattle/internal/game/battle"
)

//go:generate mockgen -destination=mocks/mock_report_store.go -package=mocks github.com/udisondev/herobattle/internal/sim ReportStore

// ReportStore archives battle results.
type ReportStore interface {
	Save(ctx context.Context, r battle.Result) error
}
