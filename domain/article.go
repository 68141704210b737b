package domain

import "time"

// ArticleItem is one link discovered in a watched input list.
type ArticleItem struct {
	Title string
	Link  string
}

// GeneratedPost is the model output for one article, ready to persist.
type GeneratedPost struct {
	Title       string
	Link        string
	SourceFile  string
	GeneratedAt time.Time
	Body        string
}
