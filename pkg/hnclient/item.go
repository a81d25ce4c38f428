package hnclient

// Item is a single Hacker News item as returned by /v0/item/{id}.json.
// Items are value objects: decoded once from the upstream response and
// never mutated afterwards.
type Item struct {
	// By is the username of the item's author.
	By string `json:"by"`

	// Descendants is the total comment count.
	Descendants int `json:"descendants"`

	// ID is the item's unique upstream-assigned identifier.
	ID int64 `json:"id"`

	// Kids are the IDs of the item's direct children, ranked display order.
	Kids []int64 `json:"kids,omitempty"`

	// Score is the story's score.
	Score int `json:"score"`

	// Time is the creation time in Unix epoch seconds.
	Time int64 `json:"time"`

	// Title is the story title. Items without a title are not searchable.
	Title string `json:"title"`

	// Type is the item kind ("story", "comment", "job", ...).
	Type string `json:"type"`

	// URL is the story URL. Empty for text-only posts.
	URL string `json:"url,omitempty"`
}
