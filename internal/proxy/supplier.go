package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const (
	maxParallelChecks = 50
	checkTimeout      = 5 * time.Second
)

// ProxySupplier hands out outbound proxies in round-robin order
type ProxySupplier interface {
	Get() string
	Len() int
}

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier checks every configured proxy against testURL and keeps the ones that answer
func NewProxySupplier(ctx context.Context, proxies []string, testURL string) (ProxySupplier, error) {
	if len(proxies) == 0 {
		return &proxySupplier{proxies: []string{}}, nil
	}

	log.Infof("Checking %d proxies against %s", len(proxies), testURL)

	working := make([]bool, len(proxies))
	semaphore := make(chan struct{}, maxParallelChecks)

	var wg sync.WaitGroup
	for i, proxyURL := range proxies {
		wg.Add(1)

		go func(index int, proxy string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if isProxyValid(ctx, proxy, testURL) {
				working[index] = true
				log.Debugf("Proxy %s is working", proxy)
			} else {
				log.Warnf("Proxy %s is not working, skipping", proxy)
			}
		}(i, proxyURL)
	}
	wg.Wait()

	// keep configuration order so rotation is predictable
	valid := make([]string, 0, len(proxies))
	for i, proxyURL := range proxies {
		if working[i] {
			valid = append(valid, proxyURL)
		}
	}

	log.Infof("Proxy pool ready with %d of %d proxies", len(valid), len(proxies))

	return &proxySupplier{proxies: valid}, nil
}

// Get returns the next proxy URL, or "" when the pool is empty
func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxy
}

func (p *proxySupplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

func isProxyValid(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(checkTimeout).
		SetRetryCount(0).
		SetProxy(proxyURL)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)

	if err != nil {
		log.Debugf("Proxy check failed for %s: %v", proxyURL, err)
		return false
	}

	// any HTTP answer proves the proxy forwards; upstream status is not our concern here
	if resp.StatusCode() >= 500 {
		log.Debugf("Proxy check failed for %s with status: %s", proxyURL, resp.Status())
		return false
	}

	return true
}
