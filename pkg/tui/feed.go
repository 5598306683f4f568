package tui

import "fmt"

// Feed is an in-memory paged data source standing in for a backend.
type Feed struct {
	title    string
	pageSize int
	pages    int
	loaded   int
	revision int
}

// NewFeed returns a feed of pages×pageSize rows with the first page loaded.
func NewFeed(title string, pageSize, pages int) *Feed {
	if pageSize <= 0 {
		pageSize = 1
	}
	if pages <= 0 {
		pages = 1
	}
	return &Feed{title: title, pageSize: pageSize, pages: pages, loaded: 1, revision: 1}
}

// Len returns the number of loaded rows.
func (f *Feed) Len() int {
	return f.loaded * f.pageSize
}

// Row returns the text of row i.
func (f *Feed) Row(i int) string {
	return fmt.Sprintf("%s #%d  (rev %d)", f.title, i+1, f.revision)
}

// Refresh reloads the feed from its first page.
func (f *Feed) Refresh() {
	f.revision++
	f.loaded = 1
}

// NextPage loads one more page, if any remain.
func (f *Feed) NextPage() {
	if f.loaded < f.pages {
		f.loaded++
	}
}

// LoadedAll reports whether every page has been loaded.
func (f *Feed) LoadedAll() bool {
	return f.loaded >= f.pages
}
