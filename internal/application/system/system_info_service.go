package system

import (
	"context"
	"runtime"
	"sort"
	"time"
)

// DependencyCheck probes one backing service
type DependencyCheck func(ctx context.Context) error

// AppInfo identifies the running build
type AppInfo struct {
	Name           string
	Version        string
	Environment    string
	DatabaseDriver string
}

// SystemInfoService reports runtime and dependency status
type SystemInfoService struct {
	info      AppInfo
	checks    map[string]DependencyCheck
	startedAt time.Time
	timeout   time.Duration
}

// NewSystemInfoService creates a new SystemInfoService.
// Dependencies registered with a nil check are reported as "disabled".
func NewSystemInfoService(info AppInfo, checks map[string]DependencyCheck) *SystemInfoService {
	return &SystemInfoService{
		info:      info,
		checks:    checks,
		startedAt: time.Now(),
		timeout:   2 * time.Second,
	}
}

// Info collects the report; dependency probes run with a short timeout each
func (s *SystemInfoService) Info(ctx context.Context) *SystemInfo {
	uptime := time.Since(s.startedAt)

	deps := make(map[string]string, len(s.checks))
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		deps[name] = s.probe(ctx, s.checks[name])
	}

	return &SystemInfo{
		AppName:        s.info.Name,
		AppVersion:     s.info.Version,
		Environment:    s.info.Environment,
		GoVersion:      runtime.Version(),
		OS:             runtime.GOOS,
		Arch:           runtime.GOARCH,
		NumCPU:         runtime.NumCPU(),
		NumGoroutine:   runtime.NumGoroutine(),
		StartedAt:      s.startedAt,
		Uptime:         uptime.Round(time.Second).String(),
		UptimeSeconds:  int64(uptime.Seconds()),
		DatabaseDriver: s.info.DatabaseDriver,
		Dependencies:   deps,
	}
}

func (s *SystemInfoService) probe(ctx context.Context, check DependencyCheck) string {
	if check == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := check(ctx); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}
