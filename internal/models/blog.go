package models

import "github.com/harentsoaR/doctor-portfolio-api/internal/store"

const (
	BlogTitle      store.Field = "title"
	BlogContent    store.Field = "content"
	BlogCoverImage store.Field = "cover_image"
	BlogTags       store.Field = "tags"
	BlogPublished  store.Field = "published"
)

var BlogPosts = store.Collection{
	Name:   "blogpost",
	Fields: []store.Field{BlogTitle, BlogContent, BlogCoverImage, BlogTags, BlogPublished},
}

type BlogPostInput struct {
	Title      string   `bson:"title" json:"title" binding:"required"`
	Content    string   `bson:"content" json:"content" binding:"required"`
	CoverImage *string  `bson:"cover_image" json:"cover_image"`
	Tags       []string `bson:"tags" json:"tags"`
	Published  bool     `bson:"published" json:"published"`
}

func NewBlogPostInput() BlogPostInput {
	return BlogPostInput{Tags: []string{}}
}

// Normalize restores defaults that an explicit JSON null cleared.
func (in *BlogPostInput) Normalize() {
	if in.Tags == nil {
		in.Tags = []string{}
	}
}

type BlogPost struct {
	Record        `bson:",inline"`
	BlogPostInput `bson:",inline"`
}
