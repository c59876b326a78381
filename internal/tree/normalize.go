package tree

import (
	"log/slog"

	"github.com/w31r4/ptree/internal/process"
)

// Normalize indexes records by pid. When a pid is reported more than once the
// first occurrence wins. Records without a positive pid are dropped. Dangling
// parent pids are kept as they are and resolved by Build.
func Normalize(records []process.Record) map[int32]process.Record {
	normalized := make(map[int32]process.Record, len(records))
	for _, rec := range records {
		if rec.PID <= 0 {
			slog.Debug("Discarding process record without a valid pid", "pid", rec.PID)
			continue
		}
		if _, dup := normalized[rec.PID]; dup {
			slog.Debug("Discarding duplicate process record", "pid", rec.PID, "cmdline", rec.Cmdline)
			continue
		}
		normalized[rec.PID] = rec
	}
	return normalized
}
