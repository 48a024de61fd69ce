// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for Kulipoly content and users.
// Each store struct wraps a *sql.DB and exposes typed query methods.
// Lookups return (nil, nil) when nothing matches.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSlugTaken is returned when a create or update would duplicate a slug.
var ErrSlugTaken = errors.New("slug already in use")

const uniqueViolation = "23505"

// mapWriteError converts a unique-violation into ErrSlugTaken.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrSlugTaken
	}
	return fmt.Errorf("%s: %w", op, err)
}

// jsonParam encodes v for a $n::jsonb placeholder. Nil values become NULL.
func jsonParam(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return nil, nil
	}
	return string(data), nil
}

// jsonArray is jsonParam for required array columns: nil encodes as [].
func jsonArray[T any](items []T) (string, error) {
	if items == nil {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// setList accumulates "column = $n" assignments for partial updates.
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(col string, val any) {
	s.args = append(s.args, val)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setList) addJSON(col string, val any) error {
	p, err := jsonParam(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", col, err)
	}
	s.args = append(s.args, p)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d::jsonb", col, len(s.args)))
	return nil
}

func (s *setList) empty() bool { return len(s.cols) == 0 }

// update renders an UPDATE statement for table, bumping updated_at and
// matching on id. The id is appended as the last argument.
func (s *setList) update(table, returning string, id any) (string, []any) {
	args := append(s.args, id)
	cols := append(s.cols, "updated_at = GREATEST(NOW(), updated_at)")
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(cols, ", "), len(args), returning)
	return q, args
}
