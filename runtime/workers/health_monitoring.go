package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"

	"zenlarn/contract"
)

var _ contract.Worker = (*HealthWorker)(nil)

// SelfStats is a point-in-time picture of the server process.
type SelfStats struct {
	RSSMb      uint64  `json:"rss_mb"`
	CPUPercent float64 `json:"cpu_percent"`
	Goroutines int     `json:"goroutines"`
	NumGC      uint32  `json:"num_gc"`
	At         string  `json:"at"`
}

// HealthWorker samples process health on a fixed interval and keeps the
// latest snapshot available for the health endpoint.
type HealthWorker struct {
	log      *slog.Logger
	interval time.Duration

	mu     sync.RWMutex
	latest SelfStats
}

func NewHealthWorker(log *slog.Logger, interval time.Duration) *HealthWorker {
	return &HealthWorker{log: log, interval: interval}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stats, err := collectSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "error", err)
				continue
			}

			w.mu.Lock()
			w.latest = stats
			w.mu.Unlock()

			w.log.Debug("Health sample",
				"rss_mb", stats.RSSMb,
				"cpu_percent", stats.CPUPercent,
				"goroutines", stats.Goroutines)
		}
	}
}

// Latest returns the most recent snapshot, zero-valued before the first tick.
func (w *HealthWorker) Latest() SelfStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

func collectSelfStats(p *process.Process) (SelfStats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return SelfStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return SelfStats{}, err
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SelfStats{
		RSSMb:      memInfo.RSS / (1 << 20),
		CPUPercent: cpuPercent,
		Goroutines: runtime.NumGoroutine(),
		NumGC:      memStats.NumGC,
		At:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}
