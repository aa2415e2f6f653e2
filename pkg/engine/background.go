package engine

import (
	"runtime"
	"time"
)

// GetMemoryStats returns current memory usage statistics
func (e *Engine) GetMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	e.mu.RLock()
	collections := len(e.collections)
	documents := 0
	for _, h := range e.collections {
		documents += len(h.indexes.GetAllData())
	}
	e.mu.RUnlock()

	return map[string]interface{}{
		"alloc_mb":       m.Alloc / 1024 / 1024,
		"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
		"sys_mb":         m.Sys / 1024 / 1024,
		"num_goroutines": runtime.NumGoroutine(),
		"collections":    collections,
		"documents":      documents,
	}
}

// StartBackgroundWorkers starts the periodic compaction worker, if
// configured.
func (e *Engine) StartBackgroundWorkers() {
	if e.compactInterval <= 0 {
		return
	}

	e.backgroundWg.Add(1)
	go func() {
		defer e.backgroundWg.Done()
		ticker := time.NewTicker(e.compactInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				start := time.Now()
				if err := e.CompactAll(); err != nil {
					e.logger.Error().Err(err).Msg("background compaction finished with errors")
				} else {
					e.logger.Debug().Dur("elapsed", time.Since(start)).Msg("background compaction complete")
				}
			case <-e.stopChan:
				return
			}
		}
	}()
}

// StopBackgroundWorkers stops background workers
func (e *Engine) StopBackgroundWorkers() {
	e.stopOnce.Do(func() {
		close(e.stopChan)
	})
	e.backgroundWg.Wait()
}
