package workout

import (
	"sync"
	"time"
)

// tickDriver fires a callback on a fixed period until stopped.
type tickDriver struct {
	stopCh chan struct{}
	once   sync.Once
}

func startTickDriver(interval time.Duration, onTick func()) *tickDriver {
	driver := &tickDriver{stopCh: make(chan struct{})}
	go driver.run(interval, onTick)
	return driver
}

func (driver *tickDriver) run(interval time.Duration, onTick func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-driver.stopCh:
			return
		case <-ticker.C:
			select {
			case <-driver.stopCh:
				return
			default:
			}
			onTick()
		}
	}
}

// stop never blocks, so it is safe to call while holding the machine lock.
func (driver *tickDriver) stop() {
	driver.once.Do(func() {
		close(driver.stopCh)
	})
}
