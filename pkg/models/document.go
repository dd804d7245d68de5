package models

import "time"

// Document is an HTML document on disk. Content is stored in source form,
// with math as $...$ and $$...$$ notation.
type Document struct {
	Path     string
	Content  string
	Modified time.Time
}
