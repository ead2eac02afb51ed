package common

import (
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceLimiterConfig holds configuration for the resource limiter
type ResourceLimiterConfig struct {
	MaxMemoryMB        int64   // Maximum memory allocated by the process before diffs are degraded
	MaxGoroutines      int     // Maximum number of goroutines
	SystemMemThreshold float64 // System memory used percentage above which new content diffs are refused
}

// DefaultResourceLimiterConfig returns default configuration
func DefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		MaxMemoryMB:        2048,
		MaxGoroutines:      10000,
		SystemMemThreshold: 90.0,
	}
}

// ResourceUsage represents current process and system resource usage
type ResourceUsage struct {
	AllocMB              int64
	SysMB                int64
	Goroutines           int
	SystemMemUsedMB      int64
	SystemMemTotalMB     int64
	SystemMemUsedPercent float64
}

// GetResourceUsage returns current resource usage statistics
func GetResourceUsage() ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		SysMB:      int64(m.Sys / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemUsedMB = int64(vmStat.Used / 1024 / 1024)
		usage.SystemMemTotalMB = int64(vmStat.Total / 1024 / 1024)
		usage.SystemMemUsedPercent = vmStat.UsedPercent
	}

	return usage
}

// ResourceLimiter gates memory-hungry work such as whole-file diffs of large trees
type ResourceLimiter struct {
	config ResourceLimiterConfig
	logger zerolog.Logger
}

// NewResourceLimiter creates a new resource limiter
func NewResourceLimiter(config ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	return &ResourceLimiter{
		config: config,
		logger: logger.With().Str("component", "ResourceLimiter").Logger(),
	}
}

// CheckMemoryLimit checks if current process memory usage exceeds the configured limit
func (rl *ResourceLimiter) CheckMemoryLimit() error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	currentMB := int64(m.Alloc / 1024 / 1024)
	if currentMB > rl.config.MaxMemoryMB {
		return fmt.Errorf("memory limit exceeded: current %dMB > limit %dMB", currentMB, rl.config.MaxMemoryMB)
	}

	return nil
}

// CheckGoroutineLimit checks if current goroutine count exceeds the configured limit
func (rl *ResourceLimiter) CheckGoroutineLimit() error {
	current := runtime.NumGoroutine()
	if current > rl.config.MaxGoroutines {
		return fmt.Errorf("goroutine limit exceeded: current %d > limit %d", current, rl.config.MaxGoroutines)
	}

	return nil
}

// CheckSystemMemory checks system-wide memory pressure via gopsutil
func (rl *ResourceLimiter) CheckSystemMemory() error {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		// Unable to read system stats; treat as unconstrained rather than failing the diff
		rl.logger.Warn().Err(err).Msg("Failed to read system memory stats")
		return nil
	}

	if vmStat.UsedPercent > rl.config.SystemMemThreshold {
		return fmt.Errorf("system memory pressure too high: %.1f%% used > %.1f%% threshold",
			vmStat.UsedPercent, rl.config.SystemMemThreshold)
	}

	return nil
}

// CheckAll runs all resource checks and returns the first failure
func (rl *ResourceLimiter) CheckAll() error {
	if err := rl.CheckMemoryLimit(); err != nil {
		return err
	}
	if err := rl.CheckGoroutineLimit(); err != nil {
		return err
	}
	return rl.CheckSystemMemory()
}

// LogUsage emits a debug log line with the current resource usage
func (rl *ResourceLimiter) LogUsage() {
	usage := GetResourceUsage()
	rl.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mb", usage.SysMB).
		Int("goroutines", usage.Goroutines).
		Float64("system_mem_used_percent", usage.SystemMemUsedPercent).
		Time("checked_at", time.Now()).
		Msg("Resource usage snapshot")
}
