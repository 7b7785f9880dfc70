// Package resource bounds the concurrency, memory and read throughput of
// snapshot loading.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentLoads is the maximum number of snapshots loaded at once.
	// If 0, defaults to 4.
	MaxConcurrentLoads int64

	// MemoryLimitBytes caps the raw snapshot bytes held while decoding.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// IOLimitBytesPerSec is the maximum blob read throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller hands out load slots, memory reservations and IO budget.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	loadSem *semaphore.Weighted

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = 4
	}

	c := &Controller{
		cfg:     cfg,
		loadSem: semaphore.NewWeighted(cfg.MaxConcurrentLoads),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireLoad reserves a load slot, blocking until one is free or ctx is done.
func (c *Controller) AcquireLoad(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.loadSem.Acquire(ctx, 1)
}

// TryAcquireLoad reserves a load slot without blocking.
func (c *Controller) TryAcquireLoad() bool {
	if c == nil {
		return true
	}
	return c.loadSem.TryAcquire(1)
}

// ReleaseLoad releases a load slot.
func (c *Controller) ReleaseLoad() {
	if c == nil {
		return
	}
	c.loadSem.Release(1)
}

// AcquireMemory reserves memory for a decode.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
// Requests larger than the limit are clamped to it so they can still proceed alone.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, c.clamp(bytes)); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil && !c.memSem.TryAcquire(c.clamp(bytes)) {
		return false
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(c.clamp(bytes))
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

func (c *Controller) clamp(bytes int64) int64 {
	return min(bytes, c.cfg.MemoryLimitBytes)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than one second of budget are split into bursts.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return ctx.Err()
	}
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
