package stream

import "sync"

// ipLimiter caps concurrent streams per client IP.
type ipLimiter struct {
	mu     sync.Mutex
	max    int
	active map[string]int
}

func newIPLimiter(max int) *ipLimiter {
	return &ipLimiter{max: max, active: make(map[string]int)}
}

// acquire reserves a slot for ip; it reports false when the cap is reached.
func (l *ipLimiter) acquire(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active[ip] >= l.max {
		return false
	}
	l.active[ip]++
	return true
}

// release frees a slot previously acquired for ip.
func (l *ipLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active[ip] <= 1 {
		delete(l.active, ip)
		return
	}
	l.active[ip]--
}
