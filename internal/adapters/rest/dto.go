package rest

// HealthResponse - ответ GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// maxBodyBytes ограничивает размер тела POST/PATCH
const maxBodyBytes = 1 << 20
