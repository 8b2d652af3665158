package dto

type PaginationMetadata struct {
	TotalCount uint64 `json:"total_count"`
	Page       uint64 `json:"page"`
	Limit      int    `json:"limit"`
}

type PaginationResponse struct {
	Metadata PaginationMetadata `json:"_metadata"`
	Records  interface{}        `json:"records"`
}
