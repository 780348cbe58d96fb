package services

import (
	"sync"

	"github.com/dmitrijs2005/vivigo/internal/client/models"
)

// Listener receives session transitions synchronously, in subscription order.
type Listener = func(models.SessionState)

type subscription struct {
	id int
	fn Listener
}

type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

func (b *broadcaster) subscribe(fn Listener) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publish calls listeners outside the lock so they may (un)subscribe.
func (b *broadcaster) publish(st models.SessionState) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(st)
	}
}
