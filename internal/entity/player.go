package entity

// PlayerState is the per-match record of one side.
type PlayerState struct {
	Mark  Cell   `json:"mark"`
	Name  string `json:"name"`
	Moves int    `json:"moves"`
}
