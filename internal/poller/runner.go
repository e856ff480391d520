// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run repeats acquisition passes on a ticker and emits one Result per tick.
// Passes never overlap and a failed pass is not retried before the next tick.
func (p *Poller) Run(ctx context.Context, interval time.Duration, out chan<- Result) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, err := p.ReadAll()
			res := Result{At: time.Now(), Snapshot: snap, Err: err}
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}
