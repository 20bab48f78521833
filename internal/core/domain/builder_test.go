package domain

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

const fixedNowISO = "2024-05-01T10:00:00.000Z"

func newTestBuilder() *Builder {
	return NewBuilder(
		WithClock(func() time.Time { return fixedNow }),
		WithRatingProvider(FixedRating("4.2")),
	)
}

// validRaw - минимальный корректный набор в формате клиента
func validRaw() RawListing {
	return RawListing{
		"location":         "HSR Layout, Bengaluru",
		"price":            25000.0,
		"deposit":          50000.0,
		"listingGoal":      "Rent",
		"furnishingStatus": "Semi-Furnished",
		"imageLinks":       []any{"https://img.example/1.jpg"},
	}
}

func without(raw RawListing, keys ...string) RawListing {
	out := make(RawListing, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func with(raw RawListing, key string, value any) RawListing {
	out := without(raw)
	out[key] = value
	return out
}

func TestBuildAppliesDefaults(t *testing.T) {
	rec, err := newTestBuilder().Build(validRaw())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"PropertyType", rec.PropertyType, DefaultPropertyType},
		{"FinalAvailableDate", rec.FinalAvailableDate, DefaultAvailableDate},
		{"PreferredGender", rec.PreferredGender, DefaultPreferredGender},
		{"Status", rec.Status, DefaultStatus},
		{"GatedSecurity", rec.GatedSecurity, true},
		{"IsNoBrokerage", rec.IsNoBrokerage, false},
		{"IsFlatmateListing", rec.IsFlatmateListing, false},
		{"Rating", rec.Rating, "4.2"},
		{"CreatedAt", rec.CreatedAt, fixedNowISO},
		{"UpdatedAt", rec.UpdatedAt, fixedNowISO},
		{"Bedrooms", rec.Bedrooms, 0},
		{"CarpetAreaSqft", rec.CarpetAreaSqft, 0},
		{"MaintenanceCharges", rec.MaintenanceCharges, 0.0},
	}
	for _, c := range checks {
		if !reflect.DeepEqual(c.got, c.want) {
			t.Errorf("%s = %#v, want %#v", c.name, c.got, c.want)
		}
	}

	if rec.City != nil || rec.PreferredOccupation != nil || rec.Facing != nil {
		t.Errorf("optional text fields should be nil, got city=%v occupation=%v facing=%v", rec.City, rec.PreferredOccupation, rec.Facing)
	}
	for name, list := range map[string][]string{
		"FurnishingDetails": rec.FurnishingDetails,
		"SelectedAmenities": rec.SelectedAmenities,
		"FlooringType":      rec.FlooringType,
	} {
		if list == nil || len(list) != 0 {
			t.Errorf("%s = %#v, want empty list", name, list)
		}
	}
	if rec.TransitPoints == nil || rec.EssentialPoints == nil || rec.UtilityPoints == nil {
		t.Error("proximity arrays should never be nil")
	}
}

func TestBuildRequiredFieldsOnSuccess(t *testing.T) {
	rec, err := newTestBuilder().Build(validRaw())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if rec.Location == "" || rec.Price <= 0 || rec.Deposit < 0 || len(rec.ImageLinks) == 0 || rec.FurnishingStatus == "" {
		t.Errorf("required fields not satisfied: %+v", rec)
	}
	if rec.ListingGoal != GoalRent {
		t.Errorf("ListingGoal = %q, want %q", rec.ListingGoal, GoalRent)
	}
}

func TestBuildFailsFastInFixedOrder(t *testing.T) {
	order := []struct {
		key   string
		field string
	}{
		{"location", FieldLocation},
		{"price", FieldPrice},
		{"listingGoal", FieldListingGoal},
		{"furnishingStatus", FieldFurnishingStatus},
		{"deposit", FieldDeposit},
		{"imageLinks", FieldImageLinks},
	}

	// Удаляем все обязательные поля, затем возвращаем по одному и проверяем,
	// что ошибка всегда указывает на первое отсутствующее
	raw := RawListing{}
	full := validRaw()
	for _, step := range order {
		_, err := newTestBuilder().Build(raw)
		if err == nil {
			t.Fatalf("Build() with %v succeeded, want error for %s", raw, step.field)
		}
		field, ok := FieldOf(err)
		if !ok || field != step.field {
			t.Errorf("Build(%v) failed on %q, want %q (err: %v)", raw, field, step.field, err)
		}
		raw = with(raw, step.key, full[step.key])
	}

	if _, err := newTestBuilder().Build(raw); err != nil {
		t.Errorf("Build() with all required fields failed: %v", err)
	}
}

func TestBuildMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawListing
		field string
	}{
		{"no location", without(validRaw(), "location"), FieldLocation},
		{"blank location", with(validRaw(), "location", "   "), FieldLocation},
		{"no price", without(validRaw(), "price"), FieldPrice},
		{"null price", with(validRaw(), "price", nil), FieldPrice},
		{"empty price", with(validRaw(), "price", ""), FieldPrice},
		{"no goal", without(validRaw(), "listingGoal"), FieldListingGoal},
		{"no furnishing", without(validRaw(), "furnishingStatus"), FieldFurnishingStatus},
		{"no deposit", without(validRaw(), "deposit"), FieldDeposit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := newTestBuilder().Build(tt.raw)
			if rec != nil {
				t.Errorf("Build() returned a record alongside an error")
			}
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("Build() error = %v, want ErrMissingField", err)
			}
			var missing *MissingFieldError
			if !errors.As(err, &missing) || missing.Field != tt.field {
				t.Errorf("Build() error = %v, want missing %q", err, tt.field)
			}
		})
	}
}

func TestBuildInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawListing
		field string
	}{
		{"price not a number", with(validRaw(), "price", "abc"), FieldPrice},
		{"price zero", with(validRaw(), "price", 0.0), FieldPrice},
		{"price negative", with(validRaw(), "price", -100.0), FieldPrice},
		{"price is bool", with(validRaw(), "price", true), FieldPrice},
		{"unknown goal", with(validRaw(), "listingGoal", "Lease"), FieldListingGoal},
		{"goal not a string", with(validRaw(), "listingGoal", 42.0), FieldListingGoal},
		{"deposit negative", with(validRaw(), "deposit", -1.0), FieldDeposit},
		{"deposit not a number", with(validRaw(), "deposit", "lots"), FieldDeposit},
		{"no image links", without(validRaw(), "imageLinks"), FieldImageLinks},
		{"empty image links", with(validRaw(), "imageLinks", []any{}), FieldImageLinks},
		{"only blank image links", with(validRaw(), "imageLinks", []any{"", "  "}), FieldImageLinks},
		{"image links not an array", with(validRaw(), "imageLinks", "https://img.example/1.jpg"), FieldImageLinks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := newTestBuilder().Build(tt.raw)
			if rec != nil {
				t.Errorf("Build() returned a record alongside an error")
			}
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("Build() error = %v, want ErrInvalidValue", err)
			}
			if field, _ := FieldOf(err); field != tt.field {
				t.Errorf("Build() failed on %q, want %q", field, tt.field)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false", err)
			}
		})
	}
}

func TestBuildAcceptsZeroDepositAndNumericStrings(t *testing.T) {
	raw := with(with(validRaw(), "deposit", 0.0), "price", "18,500")
	rec, err := newTestBuilder().Build(raw)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if rec.Deposit != 0 || rec.Price != 18500 {
		t.Errorf("Build() deposit=%v price=%v, want 0 and 18500", rec.Deposit, rec.Price)
	}
}

func TestBuildKeepsCountsNonNegativeAtExtremes(t *testing.T) {
	raw := validRaw()
	raw["bedrooms"] = 1e300
	raw["bathrooms"] = 1e19
	raw["carpetAreaSqft"] = "99999999999999999999"
	raw["currentOccupants"] = -4.0
	raw["buildingAgeYears"] = 1e30

	rec, err := newTestBuilder().Build(raw)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	counts := map[string]int{
		"Bedrooms":         rec.Bedrooms,
		"Bathrooms":        rec.Bathrooms,
		"CarpetAreaSqft":   rec.CarpetAreaSqft,
		"CurrentOccupants": rec.CurrentOccupants,
		"BuildingAgeYears": rec.BuildingAgeYears,
	}
	for name, v := range counts {
		if v != 0 {
			t.Errorf("%s = %d, want 0 for an out-of-range input", name, v)
		}
	}
	if rec.BHKLabel() != "0 Bedrooms" {
		t.Errorf("BHKLabel() = %q, want \"0 Bedrooms\"", rec.BHKLabel())
	}
}

func TestBuildAliasEquivalence(t *testing.T) {
	tests := []struct {
		name   string
		legacy RawListing
	}{
		{"rent instead of price", with(without(validRaw(), "price"), "rent", 25000.0)},
		{"furnishingType", with(without(validRaw(), "furnishingStatus"), "furnishingType", "Semi-Furnished")},
		{"storage image_links", with(without(validRaw(), "imageLinks"), "image_links", []any{"https://img.example/1.jpg"})},
		{"storage listing_goal", with(without(validRaw(), "listingGoal"), "listing_goal", "Rent")},
		{"goal in lower case", with(validRaw(), "listingGoal", "rent")},
	}

	want, err := newTestBuilder().Build(validRaw())
	if err != nil {
		t.Fatalf("Build(canonical) unexpected error: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestBuilder().Build(tt.legacy)
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Build(%v) = %+v, want %+v", tt.legacy, got, want)
			}
		})
	}
}

func TestBuildOptionalAliases(t *testing.T) {
	raw := validRaw()
	raw["amenities"] = []any{"Gym", "Pool"}
	raw["availableDate"] = "2024-06-01"
	raw["isBrokerageFree"] = true
	raw["carpetArea"] = "1200 sqft"
	raw["negotiationMargin"] = 5.0

	rec, err := newTestBuilder().Build(raw)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rec.SelectedAmenities, []string{"Gym", "Pool"}) {
		t.Errorf("SelectedAmenities = %v", rec.SelectedAmenities)
	}
	if rec.FinalAvailableDate != "2024-06-01" {
		t.Errorf("FinalAvailableDate = %q", rec.FinalAvailableDate)
	}
	if !rec.IsNoBrokerage {
		t.Error("IsNoBrokerage = false, want true")
	}
	if rec.CarpetAreaSqft != 1200 {
		t.Errorf("CarpetAreaSqft = %d, want 1200", rec.CarpetAreaSqft)
	}
	if rec.NegotiationMarginPercent != 5 {
		t.Errorf("NegotiationMarginPercent = %d, want 5", rec.NegotiationMarginPercent)
	}
}

func TestBuildNegotiation(t *testing.T) {
	tests := []struct {
		name   string
		goal   string
		margin any
		want   *float64
	}{
		{"ten percent", "Sale", 10.0, ptr(90000.0)},
		{"zero margin", "Sale", 0.0, ptr(100000.0)},
		{"absent margin", "Rent", nil, ptr(100000.0)},
		{"margin over hundred is clamped", "Rent", 150.0, ptr(0.0)},
		{"flatmate has no negotiation", "Flatmate", 10.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := with(with(validRaw(), "price", 100000.0), "listingGoal", tt.goal)
			if tt.margin != nil {
				raw["negotiationMarginPercent"] = tt.margin
			}
			// переданное значение игнорируется, цена всегда вычисляется
			raw["maxNegotiablePrice"] = 1.0

			rec, err := newTestBuilder().Build(raw)
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(rec.MaxNegotiablePrice, tt.want) {
				t.Errorf("MaxNegotiablePrice = %v, want %v", deref(rec.MaxNegotiablePrice), deref(tt.want))
			}
		})
	}
}

func TestBuildFlatmateFlag(t *testing.T) {
	rec, err := newTestBuilder().Build(with(validRaw(), "listingGoal", "Flatmate"))
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !rec.IsFlatmateListing {
		t.Error("IsFlatmateListing = false for Flatmate goal")
	}

	// переданный флаг не влияет на результат
	rec, err = newTestBuilder().Build(with(validRaw(), "isFlatmateListing", true))
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if rec.IsFlatmateListing {
		t.Error("IsFlatmateListing = true for Rent goal")
	}
}

func TestBuildKeepsSuppliedTimestampsAndRating(t *testing.T) {
	raw := validRaw()
	raw["createdAt"] = "2023-01-01T00:00:00.000Z"
	raw["rating"] = "3.7"

	rec, err := newTestBuilder().Build(raw)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if rec.CreatedAt != "2023-01-01T00:00:00.000Z" {
		t.Errorf("CreatedAt = %q", rec.CreatedAt)
	}
	if rec.UpdatedAt != rec.CreatedAt {
		t.Errorf("UpdatedAt = %q, want createdAt %q", rec.UpdatedAt, rec.CreatedAt)
	}
	if rec.Rating != "3.7" {
		t.Errorf("Rating = %q, want 3.7", rec.Rating)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	raw := validRaw()
	raw["rent"] = 1.0
	raw["amenities"] = []any{"Gym", ""}
	snapshot, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := newTestBuilder().Build(raw); err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if _, err := newTestBuilder().Rebuild(raw, RawListing{"rent": 5.0}); err != nil {
		t.Fatalf("Rebuild() unexpected error: %v", err)
	}

	after, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(snapshot) {
		t.Errorf("input was mutated:\n before %s\n after  %s", snapshot, after)
	}
}

func TestStorageRoundTrip(t *testing.T) {
	raw := validRaw()
	raw["propertyType"] = "Flat"
	raw["description"] = "Sunny corner flat"
	raw["bedrooms"] = "2 BHK"
	raw["bathrooms"] = 2.0
	raw["carpetAreaSqft"] = 1100.0
	raw["furnishingDetails"] = []any{"Sofa", "Bed"}
	raw["selectedAmenities"] = []any{"Lift"}
	raw["isNoBrokerage"] = true
	raw["negotiationMarginPercent"] = 7.0
	raw["preferredOccupation"] = "Working professional"
	raw["city"] = "Bengaluru"
	raw["pincode"] = 560102.0
	raw["maintenanceCharges"] = 2500.0
	raw["gatedSecurity"] = false
	raw["flooringType"] = []any{"Vitrified"}
	raw["transitPoints"] = []any{
		map[string]any{"type": "Bus Stop", "name": "27th Main", "distance": "300 m"},
	}
	raw["status"] = "Active"

	b := newTestBuilder()
	original, err := b.Build(raw)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	payload, err := json.Marshal(original.ToStorageRecord("user-1"))
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	var stored RawListing
	if err := json.Unmarshal(payload, &stored); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	restored, err := b.Build(stored)
	if err != nil {
		t.Fatalf("Build(stored) unexpected error: %v", err)
	}
	if !reflect.DeepEqual(restored, original) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", restored, original)
	}
}

func TestStorageRecordKeysAreStorageNames(t *testing.T) {
	rec, err := newTestBuilder().Build(validRaw())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	payload, err := json.Marshal(rec.ToStorageRecord("user-1"))
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]any
	if err := json.Unmarshal(payload, &keys); err != nil {
		t.Fatal(err)
	}

	for key := range keys {
		field, ok := CanonicalField(key)
		if !ok {
			t.Errorf("storage key %q is not a known alias", key)
			continue
		}
		if StorageKey(field) != key {
			t.Errorf("storage key %q, want StorageKey(%s) = %q", key, field, StorageKey(field))
		}
	}
	if len(keys) != len(fieldAliases) {
		t.Errorf("storage record has %d keys, alias table has %d fields", len(keys), len(fieldAliases))
	}
}

func TestRebuild(t *testing.T) {
	stored := RawListing{
		"location":          "Indiranagar",
		"price":             30000.0,
		"deposit":           60000.0,
		"listing_goal":      "Rent",
		"furnishing_status": "Furnished",
		"image_links":       []any{"a.jpg"},
		"created_at":        "2024-01-10T08:00:00.000Z",
		"updated_at":        "2024-01-10T08:00:00.000Z",
		"rating":            "4.0",
	}

	rec, err := newTestBuilder().Rebuild(stored, RawListing{"rent": 28000.0, "description": "Price dropped"})
	if err != nil {
		t.Fatalf("Rebuild() unexpected error: %v", err)
	}
	if rec.Price != 28000 {
		t.Errorf("Price = %v, want 28000", rec.Price)
	}
	if rec.Description != "Price dropped" {
		t.Errorf("Description = %q", rec.Description)
	}
	if rec.CreatedAt != "2024-01-10T08:00:00.000Z" {
		t.Errorf("CreatedAt = %q, want original", rec.CreatedAt)
	}
	if rec.UpdatedAt != fixedNowISO {
		t.Errorf("UpdatedAt = %q, want %q", rec.UpdatedAt, fixedNowISO)
	}
	if rec.Rating != "4.0" {
		t.Errorf("Rating = %q, want stored 4.0", rec.Rating)
	}
}

func TestRebuildValidatesMergedData(t *testing.T) {
	stored := validRaw()
	_, err := newTestBuilder().Rebuild(stored, RawListing{"price": -5.0})
	if field, _ := FieldOf(err); field != FieldPrice || !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Rebuild() error = %v, want invalid price", err)
	}
}

func TestRebuildWithoutCreatedAt(t *testing.T) {
	rec, err := newTestBuilder().Rebuild(validRaw(), nil)
	if err != nil {
		t.Fatalf("Rebuild() unexpected error: %v", err)
	}
	if rec.CreatedAt != fixedNowISO || rec.UpdatedAt != fixedNowISO {
		t.Errorf("timestamps = %q/%q, want %q", rec.CreatedAt, rec.UpdatedAt, fixedNowISO)
	}
}

func ptr[T any](v T) *T { return &v }

func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
