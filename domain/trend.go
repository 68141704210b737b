package domain

import "time"

// HotItem is one trending entry scraped from the aggregator page.
// Rank and Hot are kept as display strings; the aggregator does not
// guarantee they are numeric.
type HotItem struct {
	Rank   string `json:"rank"`
	Title  string `json:"title"`
	Link   string `json:"link"`
	Hot    string `json:"hot"`
	Source string `json:"source"`
}

// TrendReport is the model analysis of one scrape run.
type TrendReport struct {
	GeneratedAt time.Time
	RawDataFile string
	Analysis    string
}
