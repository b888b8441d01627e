package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	EventGameStarted       EventType = "GAME_STARTED"
	EventTurnStarted       EventType = "TURN_STARTED"
	EventPhaseChanged      EventType = "PHASE_CHANGED"
	EventAttackAutoSkipped EventType = "ATTACK_AUTO_SKIPPED"
	EventAttackSkipped     EventType = "ATTACK_SKIPPED"
	EventAttackResolved    EventType = "ATTACK_RESOLVED"
	EventCardWeakened      EventType = "CARD_WEAKENED"
	EventCardPurchased     EventType = "CARD_PURCHASED"
	EventCardDiscarded     EventType = "CARD_DISCARDED"
	EventRowRefilled       EventType = "ROW_REFILLED"
	EventCardRecovered     EventType = "CARD_RECOVERED"
	EventPlayerRested      EventType = "PLAYER_RESTED"
	EventGameRestored      EventType = "GAME_RESTORED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type      EventType
	ID        string // Unique event ID
	GameID    string
	Player    int    // Index of the acting player
	CardID    string // Card the event is about, if any
	Amount    int    // Numeric value (power, cost, payment total)
	Flag      bool   // Outcome flag (attack success, auto-triggered)
	Data      string // Additional string data, e.g. the new phase
	Timestamp time.Time
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener              // All listeners
	typedListeners map[EventType][]TypedListener // Listeners filtered by event type
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners must not publish or subscribe from inside the callback.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// PublishBatch publishes events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, gameID string, player int) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		GameID:    gameID,
		Player:    player,
		Timestamp: time.Now(),
	}
}

// NewCardEvent creates an event about a specific card.
func NewCardEvent(eventType EventType, gameID string, player int, cardID string) Event {
	evt := NewEvent(eventType, gameID, player)
	evt.CardID = cardID
	return evt
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, gameID string, player int, amount int) Event {
	evt := NewEvent(eventType, gameID, player)
	evt.Amount = amount
	return evt
}
