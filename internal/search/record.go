package search

import "time"

//Record is a single normalized job listing extracted from the results page.
//Never mutated after creation.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PostedDate  time.Time `json:"postedDate"`
	EasyApply   bool      `json:"easyApply"`
}
