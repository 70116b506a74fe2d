package store

import "time"

type ExportInput struct {
	Session  string
	Filename string
	Content  string
}

type Export struct {
	ID         string
	Session    string
	Filename   string
	Content    string
	Statements int
	CreatedAt  time.Time
}

type ExportSummary struct {
	ID         string
	Session    string
	Filename   string
	Statements int
	CreatedAt  time.Time
}
