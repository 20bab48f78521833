package domain

// RawListing - "сырые" данные объявления в том виде, в каком их отдаёт encoding/json:
// ключи могут быть каноническими, клиентскими или устаревшими.
// Ни один резолвер или парсер не изменяет эту карту.
type RawListing map[string]any

// Канонические имена полей ListingRecord
const (
	FieldLocation                 = "location"
	FieldPrice                    = "price"
	FieldDeposit                  = "deposit"
	FieldListingGoal              = "listingGoal"
	FieldFurnishingStatus         = "furnishingStatus"
	FieldImageLinks               = "imageLinks"
	FieldPropertyType             = "propertyType"
	FieldDescription              = "description"
	FieldBedrooms                 = "bedrooms"
	FieldBathrooms                = "bathrooms"
	FieldCarpetAreaSqft           = "carpetAreaSqft"
	FieldFurnishingDetails        = "furnishingDetails"
	FieldFinalAvailableDate       = "finalAvailableDate"
	FieldCurrentOccupants         = "currentOccupants"
	FieldSelectedAmenities        = "selectedAmenities"
	FieldIsFlatmateListing        = "isFlatmateListing"
	FieldIsNoBrokerage            = "isNoBrokerage"
	FieldMaxNegotiablePrice       = "maxNegotiablePrice"
	FieldNegotiationMarginPercent = "negotiationMarginPercent"
	FieldPreferredGender          = "preferredGender"
	FieldPreferredOccupation      = "preferredOccupation"
	FieldPreferredWorkLocation    = "preferredWorkLocation"
	FieldCity                     = "city"
	FieldArea                     = "area"
	FieldPincode                  = "pincode"
	FieldFlatNumber               = "flatNumber"
	FieldStateName                = "stateName"
	FieldDistrictName             = "districtName"
	FieldBuildingAgeYears         = "buildingAgeYears"
	FieldOwnershipType            = "ownershipType"
	FieldMaintenanceCharges       = "maintenanceCharges"
	FieldFacing                   = "facing"
	FieldParking                  = "parking"
	FieldGatedSecurity            = "gatedSecurity"
	FieldFlooringType             = "flooringType"
	FieldNearbyLocation           = "nearbyLocation"
	FieldTransitPoints            = "transitPoints"
	FieldEssentialPoints          = "essentialPoints"
	FieldUtilityPoints            = "utilityPoints"
	FieldPostedBy                 = "postedBy"
	FieldCreatedAt                = "createdAt"
	FieldUpdatedAt                = "updatedAt"
	FieldStatus                   = "status"
	FieldRating                   = "rating"
)

// fieldAliases - единая таблица псевдонимов: каноническое имя -> имена-источники по приоритету.
// Первым всегда идёт ключ хранилища, за ним клиентские и устаревшие имена.
var fieldAliases = map[string][]string{
	FieldLocation:                 {"location"},
	FieldPrice:                    {"price", "rent"},
	FieldDeposit:                  {"deposit"},
	FieldListingGoal:              {"listing_goal", "listingGoal"},
	FieldFurnishingStatus:         {"furnishing_status", "furnishingStatus", "furnishingType"},
	FieldImageLinks:               {"image_links", "imageLinks"},
	FieldPropertyType:             {"property_type", "propertyType"},
	FieldDescription:              {"description"},
	FieldBedrooms:                 {"bedrooms"},
	FieldBathrooms:                {"bathrooms"},
	FieldCarpetAreaSqft:           {"carpet_area_sqft", "carpetAreaSqft", "carpetArea"},
	FieldFurnishingDetails:        {"furnishing_details", "furnishingDetails"},
	FieldFinalAvailableDate:       {"final_available_date", "availableDate", "finalAvailableDate"},
	FieldCurrentOccupants:         {"current_occupants", "currentOccupants"},
	FieldSelectedAmenities:        {"selected_amenities", "amenities", "selectedAmenities"},
	FieldIsFlatmateListing:        {"is_flatmate_listing", "isFlatmateListing"},
	FieldIsNoBrokerage:            {"is_no_brokerage", "isNoBrokerage", "isBrokerageFree"},
	FieldMaxNegotiablePrice:       {"max_negotiable_price", "maxNegotiablePrice"},
	FieldNegotiationMarginPercent: {"negotiation_margin_percent", "negotiationMargin", "negotiationMarginPercent"},
	FieldPreferredGender:          {"preferred_gender", "preferredGender"},
	FieldPreferredOccupation:      {"preferred_occupation", "preferredOccupation"},
	FieldPreferredWorkLocation:    {"preferred_work_location", "preferredWorkLocation"},
	FieldCity:                     {"city"},
	FieldArea:                     {"area"},
	FieldPincode:                  {"pincode"},
	FieldFlatNumber:               {"flat_number", "flatNumber"},
	FieldStateName:                {"state_name", "stateName"},
	FieldDistrictName:             {"district_name", "districtName"},
	FieldBuildingAgeYears:         {"building_age_years", "buildingAgeYears"},
	FieldOwnershipType:            {"ownership_type", "ownershipType"},
	FieldMaintenanceCharges:       {"maintenance_charges", "maintenanceCharges"},
	FieldFacing:                   {"facing"},
	FieldParking:                  {"parking"},
	FieldGatedSecurity:            {"gated_security", "gatedSecurity"},
	FieldFlooringType:             {"flooring_type", "flooringType"},
	FieldNearbyLocation:           {"nearby_location", "nearbyLocation"},
	FieldTransitPoints:            {"transit_points", "transitPoints"},
	FieldEssentialPoints:          {"essential_points", "essentialPoints"},
	FieldUtilityPoints:            {"utility_points", "utilityPoints"},
	FieldPostedBy:                 {"posted_by", "postedBy"},
	FieldCreatedAt:                {"created_at", "createdAt"},
	FieldUpdatedAt:                {"updated_at", "updatedAt"},
	FieldStatus:                   {"status"},
	FieldRating:                   {"rating"},
}

// aliasIndex - обратный индекс: имя-источник -> каноническое имя
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	index := make(map[string]string)
	for field, names := range fieldAliases {
		for _, name := range names {
			index[name] = field
		}
	}
	return index
}

// ResolveAlias возвращает первое определённое значение среди имён в порядке приоритета.
// Отсутствующий ключ и JSON null считаются неопределёнными.
func ResolveAlias(raw RawListing, names ...string) any {
	for _, name := range names {
		if value, ok := raw[name]; ok && value != nil {
			return value
		}
	}
	return nil
}

// Resolve ищет значение канонического поля под всеми его историческими именами
func (r RawListing) Resolve(field string) any {
	names, ok := fieldAliases[field]
	if !ok {
		return ResolveAlias(r, field)
	}
	return ResolveAlias(r, names...)
}

// AliasesOf возвращает копию списка имён-источников для канонического поля
func AliasesOf(field string) []string {
	names, ok := fieldAliases[field]
	if !ok {
		return []string{field}
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// StorageKey - имя поля в хранилище
func StorageKey(field string) string {
	if names, ok := fieldAliases[field]; ok {
		return names[0]
	}
	return field
}

// CanonicalField возвращает каноническое имя для любого известного имени-источника
func CanonicalField(name string) (string, bool) {
	field, ok := aliasIndex[name]
	return field, ok
}

// MergeRaw накладывает patch поверх base и возвращает новую карту.
// Если patch задаёт поле под любым из имён, все остальные имена этого поля
// удаляются, чтобы старое значение не перекрыло новое при разрешении псевдонимов.
func MergeRaw(base, patch RawListing) RawListing {
	merged := make(RawListing, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}

	// Сначала чистим группы, затем пишем значения: patch может сам содержать
	// несколько имён одного поля, и тогда приоритет решает резолвер
	for k := range patch {
		if field, ok := aliasIndex[k]; ok {
			for _, name := range fieldAliases[field] {
				delete(merged, name)
			}
		}
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
