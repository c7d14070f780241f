package imageurl

import "strings"

// Builder resolves stored image filenames to absolute URLs. Filenames in
// the images table carry no scheme or host; the public base is supplied
// by configuration.
type Builder struct {
	baseURL string
}

// NewBuilder creates a Builder for the given public base URL, e.g.
// "https://cdn.example.com". A trailing slash is tolerated.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the fully-qualified URL for a stored filename.
func (b *Builder) URL(filename string) string {
	return b.baseURL + "/images/" + filename
}
