package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"smartdoc"
)

func (a *Adapter) SaveDocuments(ctx context.Context, documents ...*smartdoc.Document) error {
	if len(documents) < 1 {
		return nil
	}

	return a.inTxDo(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := execQueryCheckRowsAffected(ctx, tx, insertDocumentsQuery{documents: documents}); err != nil {
			return fmt.Errorf("exec insert documents query failed: %w", err)
		}

		if err := execQueryCheckRowsAffected(ctx, tx, insertDocumentStatusEventsQuery{documents: documents}); err != nil {
			return fmt.Errorf("exec insert document status events query failed: %w", err)
		}

		return nil
	})
}

type insertDocumentsQuery struct {
	documents []*smartdoc.Document
}

const insertDocumentValues = `(?, ?, ?, ?, ?, ?, ?, ?, ?, (select "id" from "document_status" ds where ds."name" = ?), ?, ?, ?)`

func (q insertDocumentsQuery) SQL() (string, []any) {
	if len(q.documents) == 0 {
		return "", nil
	}

	query := `
		with cte as (
			values ` + insertDocumentValues
	args := make([]any, 0, len(q.documents)*13)
	args = append(args, insertDocumentArgs(q.documents[0])...)
	for i := range q.documents[1:] {
		query += `, ` + insertDocumentValues
		args = append(args, insertDocumentArgs(q.documents[i+1])...)
	}
	query += `
		)
		insert into "document" (
			"id",
			"file_name",
			"content_type",
			"extension",
			"file_size",
			"file_hash",
			"embedder",
			"retriever",
			"location",
			"status",
			"content",
			"created",
			"updated"
		)
		select *
		from cte
		where 1
		on conflict("id") do update set
			"file_name"=excluded."file_name",
			"content_type"=excluded."content_type",
			"extension"=excluded."extension",
			"file_size"=excluded."file_size",
			"file_hash"=excluded."file_hash",
			"embedder"=excluded."embedder",
			"retriever"=excluded."retriever",
			"location"=excluded."location",
			"status"=excluded."status",
			"content"=excluded."content",
			"updated"=excluded."updated"
	`

	return query, args
}

func insertDocumentArgs(d *smartdoc.Document) []any {
	return []any{
		d.ID,
		d.FileName,
		d.ContentType,
		d.Extension,
		d.Size,
		d.Hash,
		d.Embedder,
		d.Retriever,
		d.Location,
		d.Status,
		d.Content,
		d.Created,
		d.Updated,
	}
}

type insertDocumentStatusEventsQuery struct {
	documents []*smartdoc.Document
}

func (q insertDocumentStatusEventsQuery) SQL() (string, []any) {
	if len(q.documents) == 0 {
		return "", nil
	}

	query := `
		with cte as (
			values (?, (select "id" from "document_status" ds where ds."name" = ?), ?, ?)
	`
	args := make([]any, 0, len(q.documents)*4)
	args = append(args, documentStatusEventArgs(q.documents[0])...)
	for i := range q.documents[1:] {
		query += `, (?, (select "id" from "document_status" ds where ds."name" = ?), ?, ?)`
		args = append(args, documentStatusEventArgs(q.documents[i+1])...)
	}
	query += `
		)
		insert into "document_status_evt" (
			"document",
			"status",
			"message",
			"created"
		)
		select *
		from cte
		where 1
	`

	return query, args
}

func documentStatusEventArgs(d *smartdoc.Document) []any {
	return []any{
		d.ID,
		d.Status,
		sql.NullString{String: d.StatusMessage, Valid: d.StatusMessage != ""},
		d.Updated,
	}
}

func (a *Adapter) ListDocuments(ctx context.Context, filter smartdoc.DocumentFilter, params smartdoc.SortParams) ([]*smartdoc.Document, error) {
	var documents []*smartdoc.Document

	if err := a.inTxDo(ctx, func(ctx context.Context, tx *sql.Tx) error {
		sql, args := selectDocumentsQuery{filter: filter}.SQL()

		if !params.Empty() {
			if !params.Valid(sortableBy) {
				return fmt.Errorf("invalid sort params")
			}
			sql += params.SQL()
		} else {
			sql += ` order by d."created" desc`
		}

		rows, err := tx.QueryContext(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("select documents query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			aDocument, err := scanDocument(rows)
			if err != nil {
				return fmt.Errorf("scan document failed: %w", err)
			}
			documents = append(documents, aDocument)
		}

		return rows.Err()
	}); err != nil {
		return nil, err
	}

	return documents, nil
}

var sortableBy = []string{`d."created"`, `d."updated"`, `d."file_name"`, `d."file_size"`}

const selectDocumentColumns = `
		select
			d."id",
			d."file_name",
			d."content_type",
			d."extension",
			d."file_size",
			d."file_hash",
			d."embedder",
			d."retriever",
			d."location",
			ds."name" as "status",
			dse."message" as "status_message",
			d."content",
			d."created",
			d."updated"
		from "document" d
		inner join "document_status" ds on d."status" = ds."id"
		left join "document_status_evt" dse on dse."id" = (
			select dse2."id" from "document_status_evt" dse2
			where dse2."document" = d."id" and dse2."status" = d."status"
			order by dse2."id" desc limit 1
		)
`

type selectDocumentsQuery struct {
	filter smartdoc.DocumentFilter
}

func (q selectDocumentsQuery) SQL() (string, []any) {
	query := selectDocumentColumns
	args := []any{}

	where, whereArgs := documentFilterClauses(q.filter)
	if where != "" {
		query += " where " + where
		args = append(args, whereArgs...)
	}

	return query, args
}

func documentFilterClauses(filter smartdoc.DocumentFilter) (string, []any) {
	var (
		clauses = []string{}
		args    = []any{}
	)

	if filter.Embedder != "" {
		clauses = append(clauses, `d."embedder" = ?`)
		args = append(args, filter.Embedder)
	}

	if filter.Retriever != "" {
		clauses = append(clauses, `d."retriever" = ?`)
		args = append(args, filter.Retriever)
	}

	if filter.Status != "" {
		clauses = append(clauses, `ds."name" = ?`)
		args = append(args, filter.Status)
	}

	if !filter.LastUpdatedBefore.IsZero() {
		clauses = append(clauses, `d."updated" < ?`)
		args = append(args, filter.LastUpdatedBefore)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return strings.Join(clauses, " and "), args
}

func (a *Adapter) FindDocument(ctx context.Context, id smartdoc.DocumentID) (*smartdoc.Document, error) {
	var aDocument *smartdoc.Document
	if err := a.inTxDo(ctx, func(ctx context.Context, tx *sql.Tx) error {
		query := selectDocumentColumns + ` where d."id" = ?`

		stmt, err := tx.Prepare(query)
		if err != nil {
			return fmt.Errorf("prepare find document statement failed: %w", err)
		}
		defer stmt.Close()

		row := stmt.QueryRowContext(ctx, id)
		aDocument, err = scanDocument(row)
		return err
	}); err != nil {
		return nil, err
	}

	return aDocument, nil
}

func (a *Adapter) DeleteDocuments(ctx context.Context, documents ...*smartdoc.Document) error {
	if len(documents) < 1 {
		return nil
	}

	return a.inTxDo(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := execQuery(ctx, tx, deleteDocumentStatusEventsQuery{documents: documents}); err != nil {
			return fmt.Errorf("exec delete document status events query failed: %w", err)
		}

		if err := execQuery(ctx, tx, deleteDocumentsQuery{documents: documents}); err != nil {
			return fmt.Errorf("exec delete documents query failed: %w", err)
		}

		return nil
	})
}

type deleteDocumentStatusEventsQuery struct {
	documents []*smartdoc.Document
}

func (q deleteDocumentStatusEventsQuery) SQL() (string, []any) {
	if len(q.documents) == 0 {
		return "", nil
	}

	sql := `delete from "document_status_evt" where "document" in (?`
	args := make([]any, 0, len(q.documents))
	args = append(args, q.documents[0].ID)
	for i := range q.documents[1:] {
		sql += `, ?`
		args = append(args, q.documents[i+1].ID)
	}
	sql += `)`

	return sql, args
}

type deleteDocumentsQuery struct {
	documents []*smartdoc.Document
}

func (q deleteDocumentsQuery) SQL() (string, []any) {
	if len(q.documents) == 0 {
		return "", nil
	}

	sql := `delete from "document" where "id" in (?`
	args := make([]any, 0, len(q.documents))
	args = append(args, q.documents[0].ID)
	for i := range q.documents[1:] {
		sql += `, ?`
		args = append(args, q.documents[i+1].ID)
	}
	sql += `)`

	return sql, args
}

func scanDocument(row Scannable) (*smartdoc.Document, error) {
	var (
		aDocument     = new(smartdoc.Document)
		statusMessage = sql.NullString{}
	)

	if err := row.Scan(
		&aDocument.ID,
		&aDocument.FileName,
		&aDocument.ContentType,
		&aDocument.Extension,
		&aDocument.Size,
		&aDocument.Hash,
		&aDocument.Embedder,
		&aDocument.Retriever,
		&aDocument.Location,
		&aDocument.Status,
		&statusMessage,
		&aDocument.Content,
		&aDocument.Created,
		&aDocument.Updated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, smartdoc.ErrNotFound
		}
		return nil, fmt.Errorf("scan document failed: %w", err)
	}

	if statusMessage.Valid {
		aDocument.StatusMessage = statusMessage.String
	}

	return aDocument, nil
}
