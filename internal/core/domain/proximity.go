package domain

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ProximityCategory - упорядоченный каталог распознаваемых типов точек
type ProximityCategory struct {
	Name  string
	Types []string
}

var (
	TransitCatalogue = ProximityCategory{
		Name:  "Transit",
		Types: []string{"Bus Stop", "Auto Stand", "Metro Station", "Railway Station", "Airport"},
	}
	EssentialCatalogue = ProximityCategory{
		Name:  "Essential",
		Types: []string{"Hospital", "Pharmacy", "School", "Grocery Store", "Market"},
	}
	UtilityCatalogue = ProximityCategory{
		Name:  "Utility",
		Types: []string{"ATM", "Bank", "Petrol Pump", "Police Station", "Post Office"},
	}
)

// ProximityGroup - все точки одного типа, отсортированные по расстоянию
type ProximityGroup struct {
	Type            string           `json:"type"`
	NearestDistance string           `json:"nearestDistance"`
	Nearest         ProximityPoint   `json:"nearest"`
	Points          []ProximityPoint `json:"points"`
}

// ProximitySummary - сводка по трём категориям
type ProximitySummary struct {
	Transit   []ProximityGroup `json:"transit"`
	Essential []ProximityGroup `json:"essential"`
	Utility   []ProximityGroup `json:"utility"`
}

var distanceRegex = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?|\.\d+)\s*(\S*)`)

// ParseDistance извлекает ведущее число и единицу измерения из строки вида "2.5 km".
// Единицы не конвертируются.
func ParseDistance(distance string) (float64, string, bool) {
	m := distanceRegex.FindStringSubmatch(distance)
	if m == nil {
		return 0, "", false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return value, m[2], true
}

// unitToMeters - множители распознаваемых единиц; строка без единицы считается в метрах
var unitToMeters = map[string]float64{
	"":   1,
	"m":  1,
	"km": 1000,
}

// distanceValue - расстояние в метрах для сравнения; нераспознанное расстояние уходит в конец
func distanceValue(p ProximityPoint) float64 {
	value, unit, ok := ParseDistance(p.Distance)
	if !ok {
		return math.Inf(1)
	}
	factor, known := unitToMeters[strings.ToLower(unit)]
	if !known {
		return math.Inf(1)
	}
	return value * factor
}

// AggregateCategory группирует точки по типам каталога и выбирает ближайшую в каждом типе.
// Расстояния сравниваются в метрах: "400 m" ближе, чем "1.2 km".
// TODO: распознавать мили и футы, когда клиенты начнут их присылать; сейчас такие точки уходят в конец.
func AggregateCategory(points []ProximityPoint, category ProximityCategory) []ProximityGroup {
	byType := make(map[string][]ProximityPoint, len(category.Types))
	for _, p := range points {
		t := strings.TrimSpace(p.Type)
		byType[t] = append(byType[t], p)
	}

	groups := make([]ProximityGroup, 0, len(category.Types))
	for _, t := range category.Types {
		typed := byType[t]
		if len(typed) == 0 {
			continue
		}

		sorted := slices.Clone(typed)
		slices.SortStableFunc(sorted, func(a, b ProximityPoint) int {
			return cmp.Compare(distanceValue(a), distanceValue(b))
		})

		groups = append(groups, ProximityGroup{
			Type:            t,
			NearestDistance: sorted[0].Distance,
			Nearest:         sorted[0],
			Points:          sorted,
		})
	}
	return groups
}

// AggregateProximity строит сводку по всем трём массивам записи
func AggregateProximity(rec *ListingRecord) ProximitySummary {
	return ProximitySummary{
		Transit:   AggregateCategory(rec.TransitPoints, TransitCatalogue),
		Essential: AggregateCategory(rec.EssentialPoints, EssentialCatalogue),
		Utility:   AggregateCategory(rec.UtilityPoints, UtilityCatalogue),
	}
}
