package domain

// requiredFields - результат успешной проверки обязательных полей
type requiredFields struct {
	location         string
	price            float64
	listingGoal      ListingGoal
	furnishingStatus string
	deposit          float64
	imageLinks       []string
}

// Validate проверяет обязательные поля, не строя запись
func Validate(raw RawListing) error {
	_, err := validateRequired(raw)
	return err
}

// validateRequired выполняет проверки в фиксированном порядке и
// останавливается на первой ошибке
func validateRequired(raw RawListing) (requiredFields, error) {
	var out requiredFields

	// 1. Локация
	location := ParseOptionalString(raw.Resolve(FieldLocation))
	if location == nil {
		return out, &MissingFieldError{Field: FieldLocation}
	}
	out.location = *location

	// 2. Цена (price / rent)
	rawPrice := raw.Resolve(FieldPrice)
	if isBlank(rawPrice) {
		return out, &MissingFieldError{Field: FieldPrice}
	}
	price, err := ParsePositiveNumber(rawPrice)
	if err != nil {
		return out, &InvalidValueError{Field: FieldPrice, Value: rawPrice, Cause: err}
	}
	out.price = price

	// 3. Цель объявления
	rawGoal := raw.Resolve(FieldListingGoal)
	if isBlank(rawGoal) {
		return out, &MissingFieldError{Field: FieldListingGoal}
	}
	goalStr, _ := rawGoal.(string)
	goal, ok := ParseListingGoal(goalStr)
	if !ok {
		return out, &InvalidValueError{Field: FieldListingGoal, Value: rawGoal, Cause: errUnknownGoal}
	}
	out.listingGoal = goal

	// 4. Меблировка (furnishingStatus / furnishingType)
	furnishing := ParseOptionalString(raw.Resolve(FieldFurnishingStatus))
	if furnishing == nil {
		return out, &MissingFieldError{Field: FieldFurnishingStatus}
	}
	out.furnishingStatus = *furnishing

	// 5. Залог
	rawDeposit := raw.Resolve(FieldDeposit)
	if isBlank(rawDeposit) {
		return out, &MissingFieldError{Field: FieldDeposit}
	}
	deposit, err := ParseNonNegativeNumber(rawDeposit)
	if err != nil {
		return out, &InvalidValueError{Field: FieldDeposit, Value: rawDeposit, Cause: err}
	}
	out.deposit = deposit

	// 6. Хотя бы одна ссылка на изображение
	images := ParseStringList(raw.Resolve(FieldImageLinks))
	if len(images) == 0 {
		return out, &InvalidValueError{Field: FieldImageLinks, Value: raw.Resolve(FieldImageLinks), Cause: errNoImages}
	}
	out.imageLinks = images

	return out, nil
}
