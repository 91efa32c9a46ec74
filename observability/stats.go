// Package observability aggregates session counters and process metrics.
package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// SessionStats is the point-in-time snapshot exposed to the UI and logs.
type SessionStats struct {
	FramesIn          uint64  `json:"frames_in"`
	FramesOut         uint64  `json:"frames_out"`
	DuplicatesDropped uint64  `json:"duplicates_dropped"`
	SelfEchoesDropped uint64  `json:"self_echoes_dropped"`
	Notifications     uint64  `json:"notifications"`
	ConnectAttempts   uint64  `json:"connect_attempts"`
	AllocMemMb        uint64  `json:"alloc_mem_mb"`
	NumGC             uint32  `json:"num_gc"`
	ProcessRSSMb      uint64  `json:"process_rss_mb"`
	ProcessCPU        float64 `json:"process_cpu_percent"`
}

// Monitor collects counters with atomics so every hot path stays lock-free;
// the snapshot is refreshed by the ticker loop.
type Monitor struct {
	log    *slog.Logger
	mu     sync.RWMutex
	latest SessionStats

	framesIn          uint64
	framesOut         uint64
	duplicatesDropped uint64
	selfEchoesDropped uint64
	notifications     uint64
	connectAttempts   uint64
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{log: log}
}

func (m *Monitor) IncrFramesIn()          { atomic.AddUint64(&m.framesIn, 1) }
func (m *Monitor) IncrFramesOut()         { atomic.AddUint64(&m.framesOut, 1) }
func (m *Monitor) IncrDuplicatesDropped() { atomic.AddUint64(&m.duplicatesDropped, 1) }
func (m *Monitor) IncrSelfEchoesDropped() { atomic.AddUint64(&m.selfEchoesDropped, 1) }
func (m *Monitor) IncrNotifications()     { atomic.AddUint64(&m.notifications, 1) }
func (m *Monitor) IncrConnectAttempts()   { atomic.AddUint64(&m.connectAttempts, 1) }

// Listen refreshes the snapshot on the given interval until the context is
// canceled.
func (m *Monitor) Listen(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.log.Warn("Process stats unavailable", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Monitoring stopped")
			return
		case <-ticker.C:
			m.updateStats(p)
		}
	}
}

func (m *Monitor) GetLatest() SessionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

func (m *Monitor) updateStats(p *process.Process) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latest.FramesIn = atomic.LoadUint64(&m.framesIn)
	m.latest.FramesOut = atomic.LoadUint64(&m.framesOut)
	m.latest.DuplicatesDropped = atomic.LoadUint64(&m.duplicatesDropped)
	m.latest.SelfEchoesDropped = atomic.LoadUint64(&m.selfEchoesDropped)
	m.latest.Notifications = atomic.LoadUint64(&m.notifications)
	m.latest.ConnectAttempts = atomic.LoadUint64(&m.connectAttempts)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	m.latest.AllocMemMb = mem.Alloc / 1024 / 1024
	m.latest.NumGC = mem.NumGC

	if p != nil {
		if memInfo, err := p.MemoryInfo(); err == nil {
			m.latest.ProcessRSSMb = memInfo.RSS / 1024 / 1024
		}
		if cpu, err := p.CPUPercent(); err == nil {
			m.latest.ProcessCPU = cpu
		}
	}

	m.log.Debug("Session stats refreshed",
		"frames_in", m.latest.FramesIn,
		"frames_out", m.latest.FramesOut,
		"duplicates_dropped", m.latest.DuplicatesDropped,
		"mem_mb", m.latest.AllocMemMb,
	)
}
