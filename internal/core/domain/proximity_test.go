package domain

import (
	"reflect"
	"testing"
)

func TestParseDistance(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		unit  string
		ok    bool
	}{
		{"400 m", 400, "m", true},
		{"1.2 km", 1.2, "km", true},
		{"  2.5km", 2.5, "km", true},
		{".5 km", 0.5, "km", true},
		{"15", 15, "", true},
		{"near", 0, "", false},
		{"", 0, "", false},
	}

	for _, tt := range tests {
		value, unit, ok := ParseDistance(tt.in)
		if value != tt.value || unit != tt.unit || ok != tt.ok {
			t.Errorf("ParseDistance(%q) = %v, %q, %v; want %v, %q, %v", tt.in, value, unit, ok, tt.value, tt.unit, tt.ok)
		}
	}
}

func TestAggregateCategoryPicksNearest(t *testing.T) {
	points := []ProximityPoint{
		{Type: "Metro Station", Name: "A", Distance: "1.2 km"},
		{Type: "Metro Station", Name: "B", Distance: "400 m"},
	}

	groups := AggregateCategory(points, TransitCatalogue)
	if len(groups) != 1 {
		t.Fatalf("AggregateCategory() returned %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.Type != "Metro Station" || g.Nearest.Name != "B" || g.NearestDistance != "400 m" {
		t.Errorf("group = %+v, want nearest B at 400 m", g)
	}
	if len(g.Points) != 2 || g.Points[1].Name != "A" {
		t.Errorf("points not sorted: %+v", g.Points)
	}
}

func TestAggregateCategoryComparesInMeters(t *testing.T) {
	tests := []struct {
		name      string
		distances []string
		want      []string
	}{
		{"meters beat kilometers", []string{"1.2 km", "400 m"}, []string{"400 m", "1.2 km"}},
		{"same unit", []string{"500 m", "100 m"}, []string{"100 m", "500 m"}},
		{"900 m before 1.2 km", []string{"1.2 km", "900 m"}, []string{"900 m", "1.2 km"}},
		{"units are case-insensitive", []string{"2 KM", "1500m"}, []string{"1500m", "2 KM"}},
		{"bare number is meters", []string{"1 km", "300"}, []string{"300", "1 km"}},
		{"unknown unit last", []string{"1 mi", "5 km"}, []string{"5 km", "1 mi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var points []ProximityPoint
			for _, d := range tt.distances {
				points = append(points, ProximityPoint{Type: "Bus Stop", Name: d, Distance: d})
			}

			groups := AggregateCategory(points, TransitCatalogue)
			if len(groups) != 1 {
				t.Fatalf("AggregateCategory() returned %d groups, want 1", len(groups))
			}

			var got []string
			for _, p := range groups[0].Points {
				got = append(got, p.Distance)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sorted distances = %v, want %v", got, tt.want)
			}
			if groups[0].NearestDistance != tt.want[0] {
				t.Errorf("NearestDistance = %q, want %q", groups[0].NearestDistance, tt.want[0])
			}
		})
	}
}

func TestAggregateCategoryOrderAndFiltering(t *testing.T) {
	points := []ProximityPoint{
		{Type: "Airport", Name: "KIA", Distance: "35 km"},
		{Type: "Spaceport", Name: "X", Distance: "1 km"},
		{Type: " Bus Stop ", Name: "Stop 1", Distance: "200 m"},
		{Type: "Bus Stop", Name: "Stop 2", Distance: "unknown"},
		{Type: "Bus Stop", Name: "Stop 3", Distance: "200 m"},
	}

	groups := AggregateCategory(points, TransitCatalogue)

	var types []string
	for _, g := range groups {
		types = append(types, g.Type)
	}
	if !reflect.DeepEqual(types, []string{"Bus Stop", "Airport"}) {
		t.Fatalf("group types = %v, want catalogue order [Bus Stop Airport]", types)
	}

	var names []string
	for _, p := range groups[0].Points {
		names = append(names, p.Name)
	}
	// равные расстояния сохраняют исходный порядок, нераспознанные - в конце
	if !reflect.DeepEqual(names, []string{"Stop 1", "Stop 3", "Stop 2"}) {
		t.Errorf("bus stops order = %v", names)
	}
}

func TestAggregateCategoryDoesNotReorderInput(t *testing.T) {
	points := []ProximityPoint{
		{Type: "Hospital", Name: "Far", Distance: "3 km"},
		{Type: "Hospital", Name: "Near", Distance: "1 km"},
	}
	AggregateCategory(points, EssentialCatalogue)
	if points[0].Name != "Far" {
		t.Errorf("input slice was reordered: %+v", points)
	}
}

func TestAggregateProximity(t *testing.T) {
	rec, err := newTestBuilder().Build(with(validRaw(), "essentialPoints", []any{
		map[string]any{"type": "Pharmacy", "name": "Apollo", "distance": "50 m"},
	}))
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	summary := AggregateProximity(rec)
	if len(summary.Transit) != 0 || len(summary.Utility) != 0 {
		t.Errorf("unexpected groups: %+v", summary)
	}
	if len(summary.Essential) != 1 || summary.Essential[0].Nearest.Name != "Apollo" {
		t.Errorf("Essential = %+v", summary.Essential)
	}
	if summary.Transit == nil {
		t.Error("empty category should be an empty list, not nil")
	}
}
