package service

import (
	"sync"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
)

// An estimateNotifier fans estimation lifecycle events out to the subscribed
// observers. Subscriptions carry no state beyond the registry itself;
// publishing is synchronous in subscription order.
type estimateNotifier struct {
	mu        sync.RWMutex
	observers []port.EstimateObserver
}

func newEstimateNotifier() *estimateNotifier {
	return &estimateNotifier{}
}

func (n *estimateNotifier) subscribe(o port.EstimateObserver) {
	if o == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, o)
}

func (n *estimateNotifier) publish(evt domain.EstimateEvent) {
	n.mu.RLock()
	observers := n.observers
	n.mu.RUnlock()

	for _, o := range observers {
		o.ObserveEstimate(evt)
	}
}
