package models

// Article is the internal article shape served to the frontend, derived
// deterministically from a WordPress post by the content mapper.
// Content is rendered HTML from the remote source, passed through as-is for
// display (no sanitization happens at this layer).
type Article struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	PillarID PillarID `json:"pillarId"`
	Category string   `json:"category"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	ImageURL string   `json:"imageUrl"`
}

// Video is a content item whose body contains an embeddable player.
type Video struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Thumb   string `json:"thumb"`
}
