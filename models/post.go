package models

// PostCategory groups blog posts
type PostCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// Post is a blog entry
type Post struct {
	ID          int64         `json:"id"`
	Title       string        `json:"titulo"`
	Summary     string        `json:"descripcion"`
	Content     string        `json:"contenido,omitempty"`
	ImageURL    string        `json:"imagenUrl"`
	Category    *PostCategory `json:"category,omitempty"`
	PublishedAt Date          `json:"fecha"`
}

// InCategory reports whether the post belongs to the category id
func (p *Post) InCategory(id int64) bool {
	return p.Category != nil && p.Category.ID == id
}
