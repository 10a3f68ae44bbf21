package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/simple-posts/internal/models"
)

var _ PostStore = (*SQLStore)(nil)

// SQLStore is a PostStore over any sqlx connection opened by db.Connect.
// Queries are written with ? placeholders and rebound per driver.
type SQLStore struct {
	DB *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.DB.SelectContext(ctx, &posts, `SELECT id, title, content FROM posts ORDER BY id`); err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}
	return posts, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := s.DB.GetContext(ctx, &post, s.DB.Rebind(`SELECT id, title, content FROM posts WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get post %d: %w", id, err)
	}
	return &post, nil
}

func (s *SQLStore) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	query := s.DB.Rebind(`
        INSERT INTO posts (title, content)
        VALUES (?, ?)
        RETURNING id
    `)

	post := models.Post{
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.DB.QueryRowxContext(ctx, query, in.Title, in.Content).Scan(&post.ID); err != nil {
		return nil, fmt.Errorf("store: create post: %w", err)
	}
	return &post, nil
}

func (s *SQLStore) Update(ctx context.Context, id int64, in models.PostInput) (*models.Post, error) {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
        UPDATE posts
        SET title = ?, content = ?
        WHERE id = ?
    `), in.Title, in.Content, id)
	if err != nil {
		return nil, fmt.Errorf("store: update post %d: %w", id, err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}
	return &models.Post{ID: id, Title: in.Title, Content: in.Content}, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("store: delete post %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
