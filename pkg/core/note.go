package core

// Note is the central entity of the domain.
// It represents a short piece of text identified by an ID.
// It is agnostic to storage format (JSON, YAML, SQL).
type Note struct {
	ID      int64  `json:"id" yaml:"id"`
	Content string `json:"content" yaml:"content"`
	Fixed   bool   `json:"fixed" yaml:"fixed"`
}
