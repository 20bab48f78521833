package domain

// ListingChangeType - вид изменения объявления
type ListingChangeType string

const (
	ListingCreated ListingChangeType = "created"
	ListingUpdated ListingChangeType = "updated"
	ListingDeleted ListingChangeType = "deleted"
)

// ListingChangedEvent - событие, публикуемое после успешной записи в хранилище.
// Для удаления поля записи не заполняются.
type ListingChangedEvent struct {
	EventID     string            `json:"eventId"`
	ChangeType  ListingChangeType `json:"changeType"`
	ListingID   string            `json:"listingId"`
	PostedBy    string            `json:"postedBy,omitempty"`
	ListingGoal string            `json:"listingGoal,omitempty"`
	Price       float64           `json:"price,omitempty"`
	Location    string            `json:"location,omitempty"`
	Status      string            `json:"status,omitempty"`
	OccurredAt  string            `json:"occurredAt"`
}

// NewListingChangedEvent заполняет событие данными записи; rec может быть nil
func NewListingChangedEvent(eventID string, changeType ListingChangeType, listingID, postedBy string, rec *ListingRecord, occurredAt string) ListingChangedEvent {
	event := ListingChangedEvent{
		EventID:    eventID,
		ChangeType: changeType,
		ListingID:  listingID,
		PostedBy:   postedBy,
		OccurredAt: occurredAt,
	}
	if rec != nil {
		event.ListingGoal = string(rec.ListingGoal)
		event.Price = rec.Price
		event.Location = rec.Location
		event.Status = rec.Status
	}
	return event
}
