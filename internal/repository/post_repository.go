package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/user-account-service/internal/model"
)

// PostRepo reads and writes the posts table.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Insert stores a post and returns its ID.
func (r *PostRepo) Insert(ctx context.Context, p model.Post) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (author_id, title, content, is_premium) VALUES (?,?,?,?)",
		p.AuthorID, p.Title, p.Content, p.IsPremium)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByPremium returns posts filtered on the is_premium flag, newest first.
func (r *PostRepo) ListByPremium(ctx context.Context, premium bool) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,author_id,title,content,is_premium,created_at FROM posts WHERE is_premium=? ORDER BY id DESC",
		premium)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.IsPremium, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// DeleteOwned removes a post only when it belongs to the given author.
// Deleting someone else's post (or a missing one) returns ErrNotFound.
func (r *PostRepo) DeleteOwned(ctx context.Context, id, authorID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM posts WHERE id=? AND author_id=?", id, authorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
