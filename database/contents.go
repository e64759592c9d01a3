package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/retriever/helper"
	"github.com/siherrmann/retriever/model"
	loadSql "github.com/siherrmann/retriever/sql"
)

// ContentsDBHandlerFunctions defines the interface for content database operations.
type ContentsDBHandlerFunctions interface {
	InsertContent(content *model.Content) error
	SelectContent(rid uuid.UUID) (*model.Content, error)
	SelectContentsByTenant(tenantID string) ([]*model.Content, error)
	DeleteContent(rid uuid.UUID) error
}

// ContentsDBHandler handles content-item database operations
type ContentsDBHandler struct {
	db *helper.Database
}

// NewContentsDBHandler creates a new contents database handler.
// It initializes the database connection and loads content-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewContentsDBHandler(db *helper.Database, force bool) (*ContentsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	contentsDbHandler := &ContentsDBHandler{
		db: db,
	}

	err := loadSql.LoadContentsSql(contentsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load contents sql", err)
	}

	err = contentsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ContentsDBHandler")

	return contentsDbHandler, nil
}

// CreateTable creates the 'contents' table in the database.
// If the table already exists, it does not create it again.
func (h *ContentsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_contents();`)
	if err != nil {
		return helper.NewError("initialize contents table", err)
	}

	h.db.Logger.Info("Checked/created table contents")

	return nil
}

// InsertContent inserts a new content item
func (h *ContentsDBHandler) InsertContent(content *model.Content) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_content($1, $2, $3, $4, $5, $6)`,
		content.TenantID,
		content.Title,
		content.Domain,
		content.ContentType,
		content.SourceURL,
		content.Metadata,
	)

	err := row.Scan(
		&content.ID,
		&content.RID,
		&content.TenantID,
		&content.Title,
		&content.Domain,
		&content.ContentType,
		&content.SourceURL,
		&content.Metadata,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectContent retrieves a content item by resource ID
func (h *ContentsDBHandler) SelectContent(rid uuid.UUID) (*model.Content, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_content($1)`,
		rid,
	)

	content := &model.Content{}
	err := row.Scan(
		&content.ID,
		&content.RID,
		&content.TenantID,
		&content.Title,
		&content.Domain,
		&content.ContentType,
		&content.SourceURL,
		&content.Metadata,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return content, nil
}

// SelectContentsByTenant retrieves all content items of a tenant
func (h *ContentsDBHandler) SelectContentsByTenant(tenantID string) ([]*model.Content, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_contents_by_tenant($1)`,
		tenantID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var contents []*model.Content
	for rows.Next() {
		content := &model.Content{}
		err := rows.Scan(
			&content.ID,
			&content.RID,
			&content.TenantID,
			&content.Title,
			&content.Domain,
			&content.ContentType,
			&content.SourceURL,
			&content.Metadata,
			&content.CreatedAt,
			&content.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		contents = append(contents, content)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return contents, nil
}

// DeleteContent deletes a content item and its chunks by resource ID
func (h *ContentsDBHandler) DeleteContent(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_content($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
