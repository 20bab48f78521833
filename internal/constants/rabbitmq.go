package constants

// Обменник событий объявлений
const (
	ListingEventsExchange     = "listing_events"
	ListingEventsExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyListingCreated = "listing.created"
	RoutingKeyListingUpdated = "listing.updated"
	RoutingKeyListingDeleted = "listing.deleted"
)

// Контракт события
const (
	ListingChangedEventType    = "ListingChangedEvent"
	ListingChangedEventVersion = "1.0.0"
)
