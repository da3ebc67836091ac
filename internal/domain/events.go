package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventProductsLoaded   EventType = "ProductsLoaded"
	EventSearchSettled    EventType = "SearchSettled"
	EventProductSelected  EventType = "ProductSelected"
	EventCacheInvalidated EventType = "CacheInvalidated"
	EventError            EventType = "Error"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ProductsLoadedEvent is emitted when the product listing has been fetched
type ProductsLoadedEvent struct {
	Count int
}

func (e ProductsLoadedEvent) Type() EventType { return EventProductsLoaded }

// SearchSettledEvent is emitted when a search result was applied to the box
type SearchSettledEvent struct {
	Query   string
	Matches int
	Err     error
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }

// ProductSelectedEvent is emitted when the user navigates to a product
type ProductSelectedEvent struct {
	Product Product
	Source  string // "search" or "carousel"
}

func (e ProductSelectedEvent) Type() EventType { return EventProductSelected }

// CacheInvalidatedEvent is emitted when the product cache is dropped
type CacheInvalidatedEvent struct{}

func (e CacheInvalidatedEvent) Type() EventType { return EventCacheInvalidated }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigSavedEvent is emitted after configuration is written to disk
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
