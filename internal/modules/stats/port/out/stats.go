package out

import (
	"context"

	practice "mindful/internal/modules/practice/domain"
)

// HistoryReader supplies the recorded practice history. Missing dates are
// simply absent from the map.
type HistoryReader interface {
	History(ctx context.Context) (practice.History, error)
}
