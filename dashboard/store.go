package dashboard

import (
	"sync"
)

// Observer is called with the new view after every transition.
type Observer func(View)

// Store holds the current State for one viewer and notifies observers
// when it changes.
type Store struct {
	notify    sync.Mutex
	mu        sync.Mutex
	state     State
	nextID    int
	observers map[int]Observer
	order     []int
}

// NewStore returns a store starting at initial.
func NewStore(initial State) *Store {
	return &Store{state: initial, observers: make(map[int]Observer)}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies transition to the current state, stores the result
// and notifies observers in subscription order. Dispatches are
// serialized end to end, so observers see views in the order states were
// stored. Observers may read the store but must not Dispatch on it.
func (s *Store) Dispatch(transition func(State) State) State {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	next := transition(s.state)
	s.state = next
	observers := make([]Observer, 0, len(s.order))
	for _, id := range s.order {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	view := next.View()
	for _, o := range observers {
		o(view)
	}
	return next
}

// Subscribe registers o and returns a function that removes it.
func (s *Store) Subscribe(o Observer) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.observers, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}
