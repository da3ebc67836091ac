package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventProductSelected, func(e DomainEvent) { got <- e })

	b.Publish(ProductSelectedEvent{Product: domain.Product{Slug: "fp-520"}, Source: "search"})

	select {
	case e := <-got:
		ev, ok := e.(ProductSelectedEvent)
		require.True(t, ok)
		assert.Equal(t, "fp-520", ev.Product.Slug)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	kept := make(chan DomainEvent, 2)
	dropped := make(chan DomainEvent, 2)
	unsubscribe := b.Subscribe(EventCacheInvalidated, func(e DomainEvent) { dropped <- e })
	b.Subscribe(EventCacheInvalidated, func(e DomainEvent) { kept <- e })
	unsubscribe()

	b.Publish(CacheInvalidatedEvent{})

	select {
	case <-kept:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber not called")
	}
	select {
	case <-dropped:
		t.Fatal("unsubscribed handler was called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()
	defer b.Close()

	done := make(chan struct{})
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { close(done) })

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking handler blocked the bus")
	}
}

func TestPublishAfterCloseDoesNotBlock(t *testing.T) {
	b := New()
	b.Close()
	b.Close()

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Publish(CacheInvalidatedEvent{})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after close")
	}
}
