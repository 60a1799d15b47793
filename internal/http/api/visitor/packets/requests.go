package packets

type SearchRequest struct {
	Query string `json:"query"`
}

type SelectRequest struct {
	TempleID string `json:"temple_id" binding:"required"`
}

type LanguageRequest struct {
	Code string `json:"code" binding:"required"`
}
