package domain

import "time"

// Article is a region write-up shown on the content pages. It shares the
// LocaleText pattern with Listing and goes through the same field
// translator in the admin workflow.
type Article struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Title      LocaleText `json:"title,omitempty"`
	Excerpt    LocaleText `json:"excerpt,omitempty"`
	Body       LocaleText `json:"body,omitempty"`
	Country    string     `json:"country,omitempty"`
	Image      string     `json:"image,omitempty"`
	Highlights []string   `json:"highlights,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ArticlePatch is a partial article update; nil leaves a field unchanged.
type ArticlePatch struct {
	Title      *LocaleText `json:"title,omitempty"`
	Excerpt    *LocaleText `json:"excerpt,omitempty"`
	Body       *LocaleText `json:"body,omitempty"`
	Country    *string     `json:"country,omitempty"`
	Image      *string     `json:"image,omitempty"`
	Highlights *[]string   `json:"highlights,omitempty"`
}

func (p ArticlePatch) Apply(a *Article) (titleChanged bool) {
	if p.Title != nil {
		a.Title = p.Title.Clone()
		titleChanged = true
	}
	if p.Excerpt != nil {
		a.Excerpt = p.Excerpt.Clone()
	}
	if p.Body != nil {
		a.Body = p.Body.Clone()
	}
	if p.Country != nil {
		a.Country = *p.Country
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
	if p.Highlights != nil {
		a.Highlights = append([]string(nil), (*p.Highlights)...)
	}
	return titleChanged
}
