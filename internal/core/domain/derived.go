package domain

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// BHKOrRoomsLabel: для квартир ("Flat", "Shared Flatmate", "...BHK...") - "N BHK" или "RK",
// для остальных типов - "N Bedrooms"
func BHKOrRoomsLabel(propertyType string, bedrooms int) string {
	if propertyType == "Flat" || propertyType == "Shared Flatmate" || strings.Contains(propertyType, "BHK") {
		if bedrooms > 0 {
			return fmt.Sprintf("%d BHK", bedrooms)
		}
		return "RK"
	}
	return fmt.Sprintf("%d Bedrooms", bedrooms)
}

// MaxNegotiablePrice - нижняя граница торга.
// Для flatmate-объявлений торг не поддерживается (nil).
func MaxNegotiablePrice(price float64, marginPercent int, goal ListingGoal) *float64 {
	if goal == GoalFlatmate {
		return nil
	}
	value := price
	if marginPercent > 0 {
		value = math.Round(price * (1 - float64(marginPercent)/100))
	}
	return &value
}

func clampPercent(p int) int {
	return max(0, min(p, 100))
}

// RatingProvider выдаёт рейтинг для объявлений, у которых он не задан
type RatingProvider interface {
	Rating() string
}

// RatingFunc позволяет использовать функцию как RatingProvider
type RatingFunc func() string

func (f RatingFunc) Rating() string {
	return f()
}

// FixedRating - провайдер с постоянным значением, удобен в тестах
func FixedRating(value string) RatingProvider {
	return RatingFunc(func() string { return value })
}

// RandomRating - значение из [3.0, 4.9] с шагом 0.1
func RandomRating() RatingProvider {
	return RatingFunc(func() string {
		return FormatRatingStep(rand.Intn(20))
	})
}

// FormatRatingStep переводит шаг 0..19 в строку рейтинга с одним знаком после запятой
func FormatRatingStep(step int) string {
	return strconv.FormatFloat(float64(step)/10+3.0, 'f', 1, 64)
}
