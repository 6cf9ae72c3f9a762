// Package app implements the primary ports: the service-order
// lifecycle manager and its supporting services.
package app

import "github.com/example/safeprag/internal/ports/primary"

// Bus is the in-process notification channel between the lifecycle
// layer and its observers. Dispatch is synchronous and happens only
// after the relevant state has been persisted, so an observer that
// re-reads the store always sees a consistent view.
type Bus struct {
	orderObservers    []func(primary.OrderEvent)
	scheduleObservers []func(primary.ScheduleEvent)
	storeObservers    []func(key string)
	cleanupObservers  []func()
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{}
}

// OnOrderChanged registers an observer for order transitions.
func (b *Bus) OnOrderChanged(fn func(primary.OrderEvent)) {
	b.orderObservers = append(b.orderObservers, fn)
}

// OnScheduleChanged registers an observer for schedule updates.
func (b *Bus) OnScheduleChanged(fn func(primary.ScheduleEvent)) {
	b.scheduleObservers = append(b.scheduleObservers, fn)
}

// OnStoreChanged registers an observer at storage-key granularity, for
// code that listens to the store rather than the domain events.
func (b *Bus) OnStoreChanged(fn func(key string)) {
	b.storeObservers = append(b.storeObservers, fn)
}

// OnSystemCleanup registers an observer for the full data wipe.
func (b *Bus) OnSystemCleanup(fn func()) {
	b.cleanupObservers = append(b.cleanupObservers, fn)
}

// PublishOrder notifies order observers.
func (b *Bus) PublishOrder(e primary.OrderEvent) {
	for _, fn := range b.orderObservers {
		fn(e)
	}
}

// PublishSchedule notifies schedule observers, then store observers
// for the schedules key. Dual-channel keeps domain-aware and generic
// observers in sync.
func (b *Bus) PublishSchedule(e primary.ScheduleEvent, storeKey string) {
	for _, fn := range b.scheduleObservers {
		fn(e)
	}
	for _, fn := range b.storeObservers {
		fn(storeKey)
	}
}

// PublishCleanup notifies cleanup observers.
func (b *Bus) PublishCleanup() {
	for _, fn := range b.cleanupObservers {
		fn()
	}
}
