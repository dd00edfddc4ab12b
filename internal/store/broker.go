package store

import (
	"context"
	"sync"
)

const subscriberBuffer = 8

type subscriber struct {
	ch chan Event
}

// Broker 进程内的 key 变更分发
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	closed bool
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

func (b *Broker) Subscribe(ctx context.Context, key string) <-chan Event {
	s := &subscriber{ch: make(chan Event, subscriberBuffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(s.ch)
		return s.ch
	}
	if b.subs[key] == nil {
		b.subs[key] = make(map[*subscriber]struct{})
	}
	b.subs[key][s] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[key][s]; !ok {
			return
		}
		delete(b.subs[key], s)
		if len(b.subs[key]) == 0 {
			delete(b.subs, key)
		}
		close(s.ch)
	}()
	return s.ch
}

// Publish 不会阻塞，订阅方积压时丢弃最旧的事件
func (b *Broker) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs[e.Key] {
		select {
		case s.ch <- e:
			continue
		default:
		}
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- e:
		default:
		}
	}
}

func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for key, subs := range b.subs {
		for s := range subs {
			close(s.ch)
		}
		delete(b.subs, key)
	}
}
