package domain

import "strings"

// ListingGoal - цель объявления
type ListingGoal string

const (
	GoalRent     ListingGoal = "Rent"
	GoalSale     ListingGoal = "Sale"
	GoalFlatmate ListingGoal = "Flatmate"
)

// ParseListingGoal сопоставляет строку с одной из целей без учёта регистра
func ParseListingGoal(s string) (ListingGoal, bool) {
	for _, goal := range []ListingGoal{GoalRent, GoalSale, GoalFlatmate} {
		if strings.EqualFold(strings.TrimSpace(s), string(goal)) {
			return goal, true
		}
	}
	return "", false
}

// Значения по умолчанию для необязательных полей
const (
	DefaultPropertyType    = "Apartment"
	DefaultAvailableDate   = "Now"
	DefaultPreferredGender = "Any"
	DefaultStatus          = "Pending Review"
	NotAvailable           = "N/A"
)

// TimestampLayout - формат ISO-времени, совпадающий с Date.toISOString() клиентов
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ProximityPoint - ближайший объект инфраструктуры
type ProximityPoint struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// ListingRecord - каноническая, полностью типизированная запись объявления.
// Создаётся только через Builder и после создания не изменяется.
// Идентификатор и автор (postedBy) принадлежат хранилищу и в запись не входят.
type ListingRecord struct {
	Location         string
	Price            float64
	Deposit          float64
	ListingGoal      ListingGoal
	FurnishingStatus string
	ImageLinks       []string

	PropertyType   string
	Description    string
	Bedrooms       int
	Bathrooms      int
	CarpetAreaSqft int

	FurnishingDetails        []string
	FinalAvailableDate       string
	CurrentOccupants         int
	SelectedAmenities        []string
	IsFlatmateListing        bool
	IsNoBrokerage            bool
	MaxNegotiablePrice       *float64
	NegotiationMarginPercent int

	PreferredGender       string
	PreferredOccupation   *string
	PreferredWorkLocation *string

	City         *string
	Area         *string
	Pincode      *string
	FlatNumber   *string
	StateName    *string
	DistrictName *string

	BuildingAgeYears   int
	OwnershipType      *string
	MaintenanceCharges float64
	Facing             *string
	Parking            *string
	GatedSecurity      bool
	FlooringType       []string
	NearbyLocation     *string

	TransitPoints   []ProximityPoint
	EssentialPoints []ProximityPoint
	UtilityPoints   []ProximityPoint

	CreatedAt string
	UpdatedAt string
	Status    string
	Rating    string
}

// BHKLabel - человекочитаемая подпись по количеству комнат
func (r *ListingRecord) BHKLabel() string {
	return BHKOrRoomsLabel(r.PropertyType, r.Bedrooms)
}

// StoredListing - запись в том виде, в каком её отдаёт хранилище
type StoredListing struct {
	ListingID string
	PostedBy  string
	Data      RawListing
}
