package services

import (
	"strconv"
	"sync"
	"time"

	"fake-news-detector/models"
)

// UpstreamStatus holds the outcome of the latest call to one model endpoint.
type UpstreamStatus struct {
	Model      models.ModelID   `json:"model"`
	Endpoint   string           `json:"endpoint"`
	StatusCode int              `json:"status_code"` // 0 when no response arrived
	LatencyMs  int64            `json:"latency_ms"`
	Healthy    bool             `json:"healthy"`
	ErrorKind  models.ErrorKind `json:"error_kind,omitempty"`
	UpdatedAt  int64            `json:"updated_at"` // unix ms
	UpdatedAgo string           `json:"updated_ago"`
}

var (
	upMu    sync.RWMutex
	upStore = map[models.ModelID]*UpstreamStatus{}
)

func recordUpstream(model models.ModelID, endpoint string, statusCode int, latency time.Duration, kind models.ErrorKind) {
	info := &UpstreamStatus{
		Model:      model,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		LatencyMs:  latency.Milliseconds(),
		Healthy:    kind == models.ErrorNone,
		ErrorKind:  kind,
		UpdatedAt:  time.Now().UnixMilli(),
	}
	upMu.Lock()
	upStore[model] = info
	upMu.Unlock()
}

// UpstreamStatuses returns a snapshot of every endpoint seen so far.
func UpstreamStatuses() map[models.ModelID]*UpstreamStatus {
	upMu.RLock()
	defer upMu.RUnlock()

	out := map[models.ModelID]*UpstreamStatus{}
	now := time.Now()
	for k, v := range upStore {
		cp := *v
		ago := now.Sub(time.UnixMilli(v.UpdatedAt))
		switch {
		case ago < time.Minute:
			cp.UpdatedAgo = strconv.Itoa(int(ago.Seconds())) + "s ago"
		default:
			cp.UpdatedAgo = strconv.Itoa(int(ago.Minutes())) + "m ago"
		}
		out[k] = &cp
	}
	return out
}
