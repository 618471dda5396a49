package ports

import (
	"context"
	"fmt"

	"safewalk-service/internal/domain"
)

// Port: a byte-oriented cache for area summaries. A nil value with a nil
// error means a miss. Write failures are advisory; callers log and move on.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// SummaryKey buckets a coordinate to four decimal places (~11 m cells) so
// requests from the same block share an entry.
func SummaryKey(c domain.Coordinate) string {
	return fmt.Sprintf("area:%.4f,%.4f", c.Lat, c.Lon)
}
