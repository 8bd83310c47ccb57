package domain

// Article is one search result considered as evidence for a claim.
type Article struct {
	Title   string
	URL     string
	Content string
	Score   float64
}

// Source renders the article as the "<title> - <content>" evidence string
// fed to the model. A missing content is treated as empty.
func (a Article) Source() string {
	return a.Title + " - " + a.Content
}
