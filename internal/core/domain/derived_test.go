package domain

import (
	"strconv"
	"testing"
)

func TestBHKOrRoomsLabel(t *testing.T) {
	tests := []struct {
		propertyType string
		bedrooms     int
		want         string
	}{
		{"Flat", 0, "RK"},
		{"Flat", 2, "2 BHK"},
		{"Shared Flatmate", 1, "1 BHK"},
		{"2 BHK Apartment", 2, "2 BHK"},
		{"Villa", 3, "3 Bedrooms"},
		{"Apartment", 0, "0 Bedrooms"},
		{"flat", 2, "2 Bedrooms"},
	}

	for _, tt := range tests {
		if got := BHKOrRoomsLabel(tt.propertyType, tt.bedrooms); got != tt.want {
			t.Errorf("BHKOrRoomsLabel(%q, %d) = %q, want %q", tt.propertyType, tt.bedrooms, got, tt.want)
		}
	}
}

func TestMaxNegotiablePrice(t *testing.T) {
	tests := []struct {
		price  float64
		margin int
		goal   ListingGoal
		want   *float64
	}{
		{100000, 10, GoalSale, ptr(90000.0)},
		{100000, 0, GoalSale, ptr(100000.0)},
		{25000, 3, GoalRent, ptr(24250.0)},
		{999, 33, GoalRent, ptr(669.0)},
		{50000, 10, GoalFlatmate, nil},
	}

	for _, tt := range tests {
		got := MaxNegotiablePrice(tt.price, tt.margin, tt.goal)
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("MaxNegotiablePrice(%v, %d, %s) = %v, want %v", tt.price, tt.margin, tt.goal, deref(got), deref(tt.want))
		}
	}
}

func TestFormatRatingStep(t *testing.T) {
	tests := []struct {
		step int
		want string
	}{
		{0, "3.0"},
		{5, "3.5"},
		{19, "4.9"},
	}
	for _, tt := range tests {
		if got := FormatRatingStep(tt.step); got != tt.want {
			t.Errorf("FormatRatingStep(%d) = %q, want %q", tt.step, got, tt.want)
		}
	}
}

func TestRandomRatingRange(t *testing.T) {
	provider := RandomRating()
	for i := 0; i < 500; i++ {
		got := provider.Rating()
		v, err := strconv.ParseFloat(got, 64)
		if err != nil {
			t.Fatalf("Rating() = %q, not a number", got)
		}
		if v < 3.0 || v > 4.9 {
			t.Fatalf("Rating() = %q, want value in [3.0, 4.9]", got)
		}
		if len(got) != 3 {
			t.Fatalf("Rating() = %q, want one decimal place", got)
		}
	}
}

func TestParseListingGoal(t *testing.T) {
	tests := []struct {
		in   string
		want ListingGoal
		ok   bool
	}{
		{"Rent", GoalRent, true},
		{"sale", GoalSale, true},
		{" FLATMATE ", GoalFlatmate, true},
		{"Lease", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseListingGoal(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseListingGoal(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
