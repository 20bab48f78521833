package domain

import "time"

// Builder собирает ListingRecord из сырых данных.
// Источники времени и рейтинга внедряются, чтобы построение было детерминированным в тестах.
type Builder struct {
	now    func() time.Time
	rating RatingProvider
}

// BuilderOption настраивает Builder
type BuilderOption func(*Builder)

// WithClock задаёт источник текущего времени
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithRatingProvider задаёт источник рейтинга по умолчанию
func WithRatingProvider(p RatingProvider) BuilderOption {
	return func(b *Builder) {
		if p != nil {
			b.rating = p
		}
	}
}

// NewBuilder создает Builder с системными часами и случайным рейтингом
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		now:    time.Now,
		rating: RandomRating(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Now возвращает текущее время в формате хранилища
func (b *Builder) Now() string {
	return b.now().UTC().Format(TimestampLayout)
}

// Build проверяет обязательные поля и строит запись целиком.
// При любой ошибке валидации запись не возвращается.
func (b *Builder) Build(raw RawListing) (*ListingRecord, error) {
	req, err := validateRequired(raw)
	if err != nil {
		return nil, err
	}

	rec := &ListingRecord{
		Location:         req.location,
		Price:            req.price,
		Deposit:          req.deposit,
		ListingGoal:      req.listingGoal,
		FurnishingStatus: req.furnishingStatus,
		ImageLinks:       req.imageLinks,

		PropertyType:   parseStringOr(raw.Resolve(FieldPropertyType), DefaultPropertyType),
		Description:    parseStringOr(raw.Resolve(FieldDescription), ""),
		Bedrooms:       ParseBedroomCount(raw.Resolve(FieldBedrooms)),
		Bathrooms:      ParseCount(raw.Resolve(FieldBathrooms)),
		CarpetAreaSqft: ParseCount(raw.Resolve(FieldCarpetAreaSqft)),

		FurnishingDetails:        ParseStringList(raw.Resolve(FieldFurnishingDetails)),
		FinalAvailableDate:       parseStringOr(raw.Resolve(FieldFinalAvailableDate), DefaultAvailableDate),
		CurrentOccupants:         ParseCount(raw.Resolve(FieldCurrentOccupants)),
		SelectedAmenities:        ParseStringList(raw.Resolve(FieldSelectedAmenities)),
		IsFlatmateListing:        req.listingGoal == GoalFlatmate,
		IsNoBrokerage:            ParseBooleanWithDefault(raw.Resolve(FieldIsNoBrokerage), false),
		NegotiationMarginPercent: clampPercent(ParseCount(raw.Resolve(FieldNegotiationMarginPercent))),

		PreferredGender:       parseStringOr(raw.Resolve(FieldPreferredGender), DefaultPreferredGender),
		PreferredOccupation:   ParseOptionalString(raw.Resolve(FieldPreferredOccupation)),
		PreferredWorkLocation: ParseOptionalString(raw.Resolve(FieldPreferredWorkLocation)),

		City:         ParseOptionalString(raw.Resolve(FieldCity)),
		Area:         ParseOptionalString(raw.Resolve(FieldArea)),
		Pincode:      ParseOptionalString(raw.Resolve(FieldPincode)),
		FlatNumber:   ParseOptionalString(raw.Resolve(FieldFlatNumber)),
		StateName:    ParseOptionalString(raw.Resolve(FieldStateName)),
		DistrictName: ParseOptionalString(raw.Resolve(FieldDistrictName)),

		BuildingAgeYears:   ParseCount(raw.Resolve(FieldBuildingAgeYears)),
		OwnershipType:      ParseOptionalString(raw.Resolve(FieldOwnershipType)),
		MaintenanceCharges: ParseNumberOr(raw.Resolve(FieldMaintenanceCharges), 0),
		Facing:             ParseOptionalString(raw.Resolve(FieldFacing)),
		Parking:            ParseOptionalString(raw.Resolve(FieldParking)),
		GatedSecurity:      ParseBooleanWithDefault(raw.Resolve(FieldGatedSecurity), true),
		FlooringType:       ParseStringList(raw.Resolve(FieldFlooringType)),
		NearbyLocation:     ParseOptionalString(raw.Resolve(FieldNearbyLocation)),

		TransitPoints:   ParseProximityPoints(raw.Resolve(FieldTransitPoints)),
		EssentialPoints: ParseProximityPoints(raw.Resolve(FieldEssentialPoints)),
		UtilityPoints:   ParseProximityPoints(raw.Resolve(FieldUtilityPoints)),

		Status: parseStringOr(raw.Resolve(FieldStatus), DefaultStatus),
	}

	rec.MaxNegotiablePrice = MaxNegotiablePrice(rec.Price, rec.NegotiationMarginPercent, rec.ListingGoal)

	if rating := ParseOptionalString(raw.Resolve(FieldRating)); rating != nil {
		rec.Rating = *rating
	} else {
		rec.Rating = b.rating.Rating()
	}

	rec.CreatedAt = parseStringOr(raw.Resolve(FieldCreatedAt), "")
	if rec.CreatedAt == "" {
		rec.CreatedAt = b.Now()
	}
	rec.UpdatedAt = parseStringOr(raw.Resolve(FieldUpdatedAt), rec.CreatedAt)

	return rec, nil
}

// Rebuild моделирует обновление: новая запись строится из слияния сохранённых
// данных и patch; createdAt сохраняется, updatedAt обновляется
func (b *Builder) Rebuild(stored, patch RawListing) (*ListingRecord, error) {
	now := b.Now()

	createdAt := stored.Resolve(FieldCreatedAt)
	if isBlank(createdAt) {
		createdAt = now
	}

	merged := MergeRaw(stored, patch)
	merged = MergeRaw(merged, RawListing{
		StorageKey(FieldCreatedAt): createdAt,
		StorageKey(FieldUpdatedAt): now,
	})

	return b.Build(merged)
}
