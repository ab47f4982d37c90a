package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fruitnuke/maze/pkg/observability"
)

// logHooks reports pipeline events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnGenerateStart(_ context.Context, algorithm string, width, height int) {
	h.logger.Debug("generate start", "algorithm", algorithm, "width", width, "height", height)
}

func (h logHooks) OnGenerateComplete(_ context.Context, algorithm string, width, height int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "algorithm", algorithm, "width", width, "height", height, "err", err)
		return
	}
	h.logger.Debug("generate done", "algorithm", algorithm, "cells", width*height, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "route", route, "status", status, "duration", d)
}

// registerLogHooks routes every observability event to logger.
func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetGenerateHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetRequestHooks(h)
}
