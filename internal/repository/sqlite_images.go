package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"photoshare/internal/models"
)

const (
	selectImageSQL    = `SELECT id, url, description, likes, created_at FROM images WHERE id = ?`
	selectImagesSQL   = `SELECT id, url, description, likes, created_at FROM images ORDER BY id DESC`
	selectCommentsSQL = `SELECT body FROM comments WHERE image_id = ? ORDER BY id ASC`
	selectAllComments = `SELECT image_id, body FROM comments ORDER BY id ASC`

	insertImageSQL     = `INSERT INTO images (url, description, likes, created_at) VALUES ('', ?, 0, ?)`
	insertSeedImageSQL = `INSERT INTO images (id, url, description, likes, created_at) VALUES (?, ?, ?, ?, ?)`
	updateImageURLSQL  = `UPDATE images SET url = ? WHERE id = ?`
	incrementLikesSQL  = `UPDATE images SET likes = likes + 1 WHERE id = ?`
	decrementLikesSQL  = `UPDATE images SET likes = MAX(likes - 1, 0) WHERE id = ?`
	insertCommentSQL   = `INSERT INTO comments (image_id, body) VALUES (?, ?)`
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *SQLiteStore) GetImage(ctx context.Context, id int) (models.Image, error) {
	return loadImage(ctx, r.db, id)
}

// ListImages returns all images ordered by id descending, comments attached.
func (r *SQLiteStore) ListImages(ctx context.Context) ([]models.Image, error) {
	rows, err := r.db.QueryContext(ctx, selectImagesSQL)
	if err != nil {
		return nil, fmt.Errorf("select images: %w", err)
	}
	defer rows.Close()

	out := make([]models.Image, 0, 16)
	index := make(map[int]int)
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.URL, &img.Description, &img.Likes, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		img.CreatedAt = img.CreatedAt.UTC()
		img.Comments = []string{}
		index[img.ID] = len(out)
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}
	// Release the only pooled connection before the next query.
	_ = rows.Close()

	crows, err := r.db.QueryContext(ctx, selectAllComments)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var (
			imageID int
			body    string
		)
		if err := crows.Scan(&imageID, &body); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if i, ok := index[imageID]; ok {
			out[i].Comments = append(out[i].Comments, body)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

// CreateImage inserts a row, then stores url(id) in the same transaction.
func (r *SQLiteStore) CreateImage(ctx context.Context, description string, url URLFunc) (models.Image, error) {
	var img models.Image
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertImageSQL, description, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("insert image: %w", err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id for image: %w", err)
		}
		id := int(lastID)
		if url != nil {
			if _, err := tx.ExecContext(ctx, updateImageURLSQL, url(id), id); err != nil {
				return fmt.Errorf("set url for image %d: %w", id, err)
			}
		}
		img, err = loadImage(ctx, tx, id)
		return err
	})
	return img, err
}

func (r *SQLiteStore) IncrementLikes(ctx context.Context, id int) (models.Image, error) {
	return r.updateAndLoad(ctx, id, incrementLikesSQL)
}

// DecrementLikes lowers the counter by one, floored at zero in SQL.
func (r *SQLiteStore) DecrementLikes(ctx context.Context, id int) (models.Image, error) {
	return r.updateAndLoad(ctx, id, decrementLikesSQL)
}

// AppendComment stores text as given. Blank text only checks existence.
func (r *SQLiteStore) AppendComment(ctx context.Context, id int, text string) (models.Image, error) {
	if strings.TrimSpace(text) == "" {
		return r.GetImage(ctx, id)
	}
	var img models.Image
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := loadImage(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertCommentSQL, id, text); err != nil {
			return fmt.Errorf("insert comment for image %d: %w", id, err)
		}
		var err error
		img, err = loadImage(ctx, tx, id)
		return err
	})
	return img, err
}

// Seed inserts images with explicit ids. AUTOINCREMENT continues past them.
func (r *SQLiteStore) Seed(ctx context.Context, images []models.Image) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, img := range images {
			createdAt := img.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now().UTC()
			}
			if _, err := tx.ExecContext(ctx, insertSeedImageSQL,
				img.ID, img.URL, img.Description, img.Likes, createdAt.UTC()); err != nil {
				return fmt.Errorf("seed image %d: %w", img.ID, err)
			}
			for _, c := range img.Comments {
				if _, err := tx.ExecContext(ctx, insertCommentSQL, img.ID, c); err != nil {
					return fmt.Errorf("seed comment for image %d: %w", img.ID, err)
				}
			}
		}
		return nil
	})
}

func (r *SQLiteStore) updateAndLoad(ctx context.Context, id int, stmt string) (models.Image, error) {
	var img models.Image
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, stmt, id)
		if err != nil {
			return fmt.Errorf("update image %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected for image %d: %w", id, err)
		}
		if n == 0 {
			return notFoundImage(id)
		}
		img, err = loadImage(ctx, tx, id)
		return err
	})
	return img, err
}

func (r *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func loadImage(ctx context.Context, q querier, id int) (models.Image, error) {
	var img models.Image
	err := q.QueryRowContext(ctx, selectImageSQL, id).
		Scan(&img.ID, &img.URL, &img.Description, &img.Likes, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Image{}, notFoundImage(id)
		}
		return models.Image{}, fmt.Errorf("select image %d: %w", id, err)
	}
	img.CreatedAt = img.CreatedAt.UTC()

	rows, err := q.QueryContext(ctx, selectCommentsSQL, id)
	if err != nil {
		return models.Image{}, fmt.Errorf("select comments for image %d: %w", id, err)
	}
	defer rows.Close()

	img.Comments = []string{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return models.Image{}, fmt.Errorf("scan comment: %w", err)
		}
		img.Comments = append(img.Comments, body)
	}
	if err := rows.Err(); err != nil {
		return models.Image{}, fmt.Errorf("iterate comments: %w", err)
	}
	return img, nil
}
