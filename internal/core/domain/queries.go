package domain

// ListingFilter - условия выборки списка; пустые поля не фильтруют
type ListingFilter struct {
	ListingGoal string
	PostedBy    string
}

// StoredPage - страница сохранённых объявлений в "сыром" виде
type StoredPage struct {
	Items []StoredListing
	Total int
}

// SummaryPage - страница карточек для ответа клиенту
type SummaryPage struct {
	Items  []ListSummary `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}
