package models

type Table struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`          // uppercase, unique
	URL  string `json:"url,omitempty"` // derived from the frontend origin on read
}
