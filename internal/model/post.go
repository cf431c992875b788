package model

import "time"

// Post is a row in the `posts` table. Premium posts are only served to
// VIP_CLIENT accounts; the rest are public.
type Post struct {
	ID        uint64    // posts.id
	AuthorID  uint64    // posts.author_id (references users.id)
	Title     string    // posts.title
	Content   string    // posts.content
	IsPremium bool      // posts.is_premium
	CreatedAt time.Time // posts.created_at
}
