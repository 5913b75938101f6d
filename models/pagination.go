package models

// Pagination is the metadata block returned alongside a page of songs.
type Pagination struct {
	TotalRecords int  `json:"total_records"`
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	NextPage     *int `json:"next_page"`
	PrevPage     *int `json:"prev_page"`
}

// SongPage is the listing response envelope.
type SongPage struct {
	Data       []Song     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// RatingResponse is returned after a successful rating update.
type RatingResponse struct {
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}
