package models

// Idea is a single ICE-scored idea. AverageScore is derived as
// (impact+ease+confidence)/3 rounded to one decimal; CreatedAt is epoch
// seconds. Both are computed by the store, never persisted.
type Idea struct {
	ID           string  `json:"id"`
	Content      string  `json:"content"`
	Impact       int     `json:"impact"`
	Ease         int     `json:"ease"`
	Confidence   int     `json:"confidence"`
	AverageScore float64 `json:"average_score"`
	UserID       int64   `json:"user_id"`
	CreatedAt    int64   `json:"created_at"`
}
