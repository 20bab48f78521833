package domain

import (
	"encoding/json"
	"slices"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// StorageRecord - полный набор полей под именами хранилища. Используется только для записи.
type StorageRecord struct {
	Location         string   `json:"location"`
	Price            float64  `json:"price"`
	Deposit          float64  `json:"deposit"`
	ListingGoal      string   `json:"listing_goal"`
	FurnishingStatus string   `json:"furnishing_status"`
	ImageLinks       []string `json:"image_links"`

	PropertyType   string `json:"property_type"`
	Description    string `json:"description"`
	Bedrooms       int    `json:"bedrooms"`
	Bathrooms      int    `json:"bathrooms"`
	CarpetAreaSqft int    `json:"carpet_area_sqft"`

	FurnishingDetails        []string `json:"furnishing_details"`
	FinalAvailableDate       string   `json:"final_available_date"`
	CurrentOccupants         int      `json:"current_occupants"`
	SelectedAmenities        []string `json:"selected_amenities"`
	IsFlatmateListing        bool     `json:"is_flatmate_listing"`
	IsNoBrokerage            bool     `json:"is_no_brokerage"`
	MaxNegotiablePrice       *float64 `json:"max_negotiable_price"`
	NegotiationMarginPercent int      `json:"negotiation_margin_percent"`

	PreferredGender       string  `json:"preferred_gender"`
	PreferredOccupation   *string `json:"preferred_occupation"`
	PreferredWorkLocation *string `json:"preferred_work_location"`

	City         *string `json:"city"`
	Area         *string `json:"area"`
	Pincode      *string `json:"pincode"`
	FlatNumber   *string `json:"flat_number"`
	StateName    *string `json:"state_name"`
	DistrictName *string `json:"district_name"`

	BuildingAgeYears   int      `json:"building_age_years"`
	OwnershipType      *string  `json:"ownership_type"`
	MaintenanceCharges float64  `json:"maintenance_charges"`
	Facing             *string  `json:"facing"`
	Parking            *string  `json:"parking"`
	GatedSecurity      bool     `json:"gated_security"`
	FlooringType       []string `json:"flooring_type"`
	NearbyLocation     *string  `json:"nearby_location"`

	TransitPoints   []ProximityPoint `json:"transit_points"`
	EssentialPoints []ProximityPoint `json:"essential_points"`
	UtilityPoints   []ProximityPoint `json:"utility_points"`

	PostedBy  string `json:"posted_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Status    string `json:"status"`
	Rating    string `json:"rating"`
}

// ToStorageRecord формирует запись для хранилища; postedBy берётся из личности вызывающего
func (r *ListingRecord) ToStorageRecord(postedBy string) StorageRecord {
	return StorageRecord{
		Location:         r.Location,
		Price:            r.Price,
		Deposit:          r.Deposit,
		ListingGoal:      string(r.ListingGoal),
		FurnishingStatus: r.FurnishingStatus,
		ImageLinks:       slices.Clone(r.ImageLinks),

		PropertyType:   r.PropertyType,
		Description:    r.Description,
		Bedrooms:       r.Bedrooms,
		Bathrooms:      r.Bathrooms,
		CarpetAreaSqft: r.CarpetAreaSqft,

		FurnishingDetails:        slices.Clone(r.FurnishingDetails),
		FinalAvailableDate:       r.FinalAvailableDate,
		CurrentOccupants:         r.CurrentOccupants,
		SelectedAmenities:        slices.Clone(r.SelectedAmenities),
		IsFlatmateListing:        r.IsFlatmateListing,
		IsNoBrokerage:            r.IsNoBrokerage,
		MaxNegotiablePrice:       r.MaxNegotiablePrice,
		NegotiationMarginPercent: r.NegotiationMarginPercent,

		PreferredGender:       r.PreferredGender,
		PreferredOccupation:   r.PreferredOccupation,
		PreferredWorkLocation: r.PreferredWorkLocation,

		City:         r.City,
		Area:         r.Area,
		Pincode:      r.Pincode,
		FlatNumber:   r.FlatNumber,
		StateName:    r.StateName,
		DistrictName: r.DistrictName,

		BuildingAgeYears:   r.BuildingAgeYears,
		OwnershipType:      r.OwnershipType,
		MaintenanceCharges: r.MaintenanceCharges,
		Facing:             r.Facing,
		Parking:            r.Parking,
		GatedSecurity:      r.GatedSecurity,
		FlooringType:       slices.Clone(r.FlooringType),
		NearbyLocation:     r.NearbyLocation,

		TransitPoints:   slices.Clone(r.TransitPoints),
		EssentialPoints: slices.Clone(r.EssentialPoints),
		UtilityPoints:   slices.Clone(r.UtilityPoints),

		PostedBy:  postedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Status:    r.Status,
		Rating:    r.Rating,
	}
}

// CreationSummary - минимальное подтверждение после успешной записи
type CreationSummary struct {
	ListingID     string   `json:"listingId"`
	Location      string   `json:"location"`
	Price         float64  `json:"price"`
	Deposit       float64  `json:"deposit"`
	ListingGoal   string   `json:"listingGoal"`
	ImageLinks    []string `json:"imageLinks"`
	PropertyType  string   `json:"propertyType"`
	IsNoBrokerage bool     `json:"isNoBrokerage"`
	CreatedAt     string   `json:"createdAt"`
	Status        string   `json:"status"`
}

func (r *ListingRecord) ToCreationSummary(listingID string) CreationSummary {
	return CreationSummary{
		ListingID:     listingID,
		Location:      r.Location,
		Price:         r.Price,
		Deposit:       r.Deposit,
		ListingGoal:   string(r.ListingGoal),
		ImageLinks:    slices.Clone(r.ImageLinks),
		PropertyType:  r.PropertyType,
		IsNoBrokerage: r.IsNoBrokerage,
		CreatedAt:     r.CreatedAt,
		Status:        r.Status,
	}
}

// AreaValue сериализуется как число или "N/A"
type AreaValue struct {
	Sqft  int
	Known bool
}

func (a AreaValue) MarshalJSON() ([]byte, error) {
	if !a.Known {
		return json.Marshal(NotAvailable)
	}
	return []byte(strconv.Itoa(a.Sqft)), nil
}

// ListSummary - облегчённая карточка для списка
type ListSummary struct {
	ListingID     string    `json:"listingId"`
	Price         string    `json:"price"`
	Image         *string   `json:"image"`
	PropertyType  string    `json:"propertyType"`
	Location      string    `json:"location"`
	Rating        string    `json:"rating"`
	Bathrooms     int       `json:"bathrooms"`
	Bedrooms      int       `json:"bedrooms"`
	BHKOrRooms    string    `json:"bhkOrRooms"`
	CarpetArea    AreaValue `json:"carpetArea"`
	AvailableDate string    `json:"availableDate"`
	ListingGoal   string    `json:"listingGoal"`
	IsNoBrokerage bool      `json:"isNoBrokerage"`
	Status        string    `json:"status"`
	CreatedAt     *string   `json:"createdAt"`
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice форматирует цену с разделителями разрядов или возвращает "N/A"
func FormatPrice(value any) string {
	n, ok := toNumber(value)
	if !ok || n <= 0 {
		return NotAvailable
	}
	return pricePrinter.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
}

// ToListSummary строит карточку прямо из сохранённых данных, которые могут быть
// в устаревшем формате. Никогда не падает: у каждого поля есть безопасное значение.
func ToListSummary(listingID string, stored RawListing) ListSummary {
	propertyType := parseStringOr(stored.Resolve(FieldPropertyType), DefaultPropertyType)
	bedrooms := ParseBedroomCount(stored.Resolve(FieldBedrooms))

	var image *string
	if images := ParseStringList(stored.Resolve(FieldImageLinks)); len(images) > 0 {
		first := images[0]
		image = &first
	}

	var area AreaValue
	if sqft := ParseCount(stored.Resolve(FieldCarpetAreaSqft)); sqft > 0 {
		area = AreaValue{Sqft: sqft, Known: true}
	}

	return ListSummary{
		ListingID:     listingID,
		Price:         FormatPrice(stored.Resolve(FieldPrice)),
		Image:         image,
		PropertyType:  propertyType,
		Location:      parseStringOr(stored.Resolve(FieldLocation), NotAvailable),
		Rating:        parseStringOr(stored.Resolve(FieldRating), NotAvailable),
		Bathrooms:     ParseCount(stored.Resolve(FieldBathrooms)),
		Bedrooms:      bedrooms,
		BHKOrRooms:    BHKOrRoomsLabel(propertyType, bedrooms),
		CarpetArea:    area,
		AvailableDate: parseStringOr(stored.Resolve(FieldFinalAvailableDate), DefaultAvailableDate),
		ListingGoal:   parseStringOr(stored.Resolve(FieldListingGoal), NotAvailable),
		IsNoBrokerage: ParseBooleanWithDefault(stored.Resolve(FieldIsNoBrokerage), false),
		Status:        parseStringOr(stored.Resolve(FieldStatus), DefaultStatus),
		CreatedAt:     ParseOptionalString(stored.Resolve(FieldCreatedAt)),
	}
}

// --- Детальное представление ---

type PropertyDetails struct {
	PropertyType      string   `json:"propertyType"`
	Description       string   `json:"description"`
	Bedrooms          int      `json:"bedrooms"`
	Bathrooms         int      `json:"bathrooms"`
	BHKOrRooms        string   `json:"bhkOrRooms"`
	CarpetAreaSqft    int      `json:"carpetAreaSqft"`
	FurnishingStatus  string   `json:"furnishingStatus"`
	FurnishingDetails []string `json:"furnishingDetails"`
	SelectedAmenities []string `json:"selectedAmenities"`
	BuildingAgeYears  int      `json:"buildingAgeYears"`
	OwnershipType     *string  `json:"ownershipType"`
	Facing            *string  `json:"facing"`
	Parking           *string  `json:"parking"`
	GatedSecurity     bool     `json:"gatedSecurity"`
	FlooringType      []string `json:"flooringType"`
}

type Financials struct {
	Price                    float64  `json:"price"`
	Deposit                  float64  `json:"deposit"`
	MaintenanceCharges       float64  `json:"maintenanceCharges"`
	IsNoBrokerage            bool     `json:"isNoBrokerage"`
	MaxNegotiablePrice       *float64 `json:"maxNegotiablePrice"`
	NegotiationMarginPercent int      `json:"negotiationMarginPercent"`
}

type Availability struct {
	FinalAvailableDate string `json:"finalAvailableDate"`
	CurrentOccupants   int    `json:"currentOccupants"`
}

type Preferences struct {
	PreferredGender       string  `json:"preferredGender"`
	PreferredOccupation   *string `json:"preferredOccupation"`
	PreferredWorkLocation *string `json:"preferredWorkLocation"`
}

type AddressDetails struct {
	City           *string `json:"city"`
	Area           *string `json:"area"`
	Pincode        *string `json:"pincode"`
	FlatNumber     *string `json:"flatNumber"`
	StateName      *string `json:"stateName"`
	DistrictName   *string `json:"districtName"`
	NearbyLocation *string `json:"nearbyLocation"`
}

type ProximityPoints struct {
	TransitPoints   []ProximityPoint `json:"transitPoints"`
	EssentialPoints []ProximityPoint `json:"essentialPoints"`
	UtilityPoints   []ProximityPoint `json:"utilityPoints"`
}

type SystemInfo struct {
	PostedBy  string `json:"postedBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Status    string `json:"status"`
	Rating    string `json:"rating"`
}

// DetailView - полная вложенная структура для экрана объявления
type DetailView struct {
	ListingID         string          `json:"listingId"`
	Location          string          `json:"location"`
	ListingGoal       string          `json:"listingGoal"`
	IsFlatmateListing bool            `json:"isFlatmateListing"`
	ImageLinks        []string        `json:"imageLinks"`
	PropertyDetails   PropertyDetails `json:"propertyDetails"`
	Financials        Financials      `json:"financials"`
	Availability      Availability    `json:"availability"`
	Preferences       Preferences     `json:"preferences"`
	AddressDetails    AddressDetails  `json:"addressDetails"`
	ProximityPoints   ProximityPoints `json:"proximityPoints"`
	SystemInfo        SystemInfo      `json:"systemInfo"`
}

func (r *ListingRecord) ToDetailView(listingID, postedBy string) DetailView {
	return DetailView{
		ListingID:         listingID,
		Location:          r.Location,
		ListingGoal:       string(r.ListingGoal),
		IsFlatmateListing: r.IsFlatmateListing,
		ImageLinks:        slices.Clone(r.ImageLinks),
		PropertyDetails: PropertyDetails{
			PropertyType:      r.PropertyType,
			Description:       r.Description,
			Bedrooms:          r.Bedrooms,
			Bathrooms:         r.Bathrooms,
			BHKOrRooms:        r.BHKLabel(),
			CarpetAreaSqft:    r.CarpetAreaSqft,
			FurnishingStatus:  r.FurnishingStatus,
			FurnishingDetails: slices.Clone(r.FurnishingDetails),
			SelectedAmenities: slices.Clone(r.SelectedAmenities),
			BuildingAgeYears:  r.BuildingAgeYears,
			OwnershipType:     r.OwnershipType,
			Facing:            r.Facing,
			Parking:           r.Parking,
			GatedSecurity:     r.GatedSecurity,
			FlooringType:      slices.Clone(r.FlooringType),
		},
		Financials: Financials{
			Price:                    r.Price,
			Deposit:                  r.Deposit,
			MaintenanceCharges:       r.MaintenanceCharges,
			IsNoBrokerage:            r.IsNoBrokerage,
			MaxNegotiablePrice:       r.MaxNegotiablePrice,
			NegotiationMarginPercent: r.NegotiationMarginPercent,
		},
		Availability: Availability{
			FinalAvailableDate: r.FinalAvailableDate,
			CurrentOccupants:   r.CurrentOccupants,
		},
		Preferences: Preferences{
			PreferredGender:       r.PreferredGender,
			PreferredOccupation:   r.PreferredOccupation,
			PreferredWorkLocation: r.PreferredWorkLocation,
		},
		AddressDetails: AddressDetails{
			City:           r.City,
			Area:           r.Area,
			Pincode:        r.Pincode,
			FlatNumber:     r.FlatNumber,
			StateName:      r.StateName,
			DistrictName:   r.DistrictName,
			NearbyLocation: r.NearbyLocation,
		},
		ProximityPoints: ProximityPoints{
			TransitPoints:   slices.Clone(r.TransitPoints),
			EssentialPoints: slices.Clone(r.EssentialPoints),
			UtilityPoints:   slices.Clone(r.UtilityPoints),
		},
		SystemInfo: SystemInfo{
			PostedBy:  postedBy,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Status:    r.Status,
			Rating:    r.Rating,
		},
	}
}
