package monitoring

import (
	"sync"
	"time"

	"attriscope/risk"
)

// ServiceStats tracks in-process counters for the dashboard summary card.
type ServiceStats struct {
	mu           sync.RWMutex
	startTime    time.Time
	predictions  int64
	perLevel     map[risk.Level]int64
	totalLatency time.Duration
}

// StatsSnapshot is the JSON view of the counters.
type StatsSnapshot struct {
	Predictions   int64                `json:"predictions"`
	PerLevel      map[risk.Level]int64 `json:"per_level"`
	AvgLatencyMS  float64              `json:"avg_latency_ms"`
	UptimeSeconds float64              `json:"uptime_seconds"`
	StartTime     time.Time            `json:"start_time"`
}

func NewServiceStats() *ServiceStats {
	return &ServiceStats{
		startTime: time.Now(),
		perLevel: map[risk.Level]int64{
			risk.LevelLow:    0,
			risk.LevelMedium: 0,
			risk.LevelHigh:   0,
		},
	}
}

func (s *ServiceStats) RecordPrediction(level risk.Level, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions++
	s.perLevel[level]++
	s.totalLatency += latency
}

func (s *ServiceStats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perLevel := make(map[risk.Level]int64, len(s.perLevel))
	for level, count := range s.perLevel {
		perLevel[level] = count
	}

	avgLatency := 0.0
	if s.predictions > 0 {
		avgLatency = float64(s.totalLatency.Milliseconds()) / float64(s.predictions)
	}

	return StatsSnapshot{
		Predictions:   s.predictions,
		PerLevel:      perLevel,
		AvgLatencyMS:  avgLatency,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		StartTime:     s.startTime,
	}
}
