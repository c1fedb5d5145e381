package models

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// StatsResponse returns the public report counters
type StatsResponse struct {
	Missing  int64 `json:"missing"`
	Found    int64 `json:"found"`
	Resolved int64 `json:"resolved"`
}
