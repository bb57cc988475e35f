package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/manifest"
	"github.com/jask/viewctrls/internal/viewctrls"
)

// ControlSet is a stored, named control-set definition.
type ControlSet struct {
	ID        string
	Name      string
	Document  *manifest.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Options resolves the stored definition into engine options.
func (s *ControlSet) Options(reg *handlers.Registry, defaults manifest.Defaults) (viewctrls.Options, error) {
	return s.Document.Options(reg, defaults)
}

// ControlSetSummary is a row of List.
type ControlSetSummary struct {
	ID        string
	Name      string
	Controls  int
	UpdatedAt time.Time
}

// SetID derives the stable id of a named set.
func SetID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("set:"+name)).String()
}

// ControlSetRepo handles control sets.
type ControlSetRepo struct {
	db *sql.DB
}

func NewControlSetRepo(db *sql.DB) *ControlSetRepo { return &ControlSetRepo{db: db} }

// Save stores s, replacing every control of an existing set with the same
// name.
func (r *ControlSetRepo) Save(ctx context.Context, s ControlSet) error {
	if s.Name == "" {
		return fmt.Errorf("control set name is required")
	}
	if s.Document == nil {
		s.Document = &manifest.Document{}
	}
	if s.ID == "" {
		s.ID = SetID(s.Name)
	}
	now := time.Now().UTC().Truncate(time.Second)

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		doc := s.Document
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO control_sets(id, name, capitalize_labels, control_class, wrapper_class, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			capitalize_labels=excluded.capitalize_labels,
			control_class=excluded.control_class,
			wrapper_class=excluded.wrapper_class,
			updated_at=excluded.updated_at;
		`, s.ID, s.Name, nullBool(doc.CapitalizeLabels), nullString(doc.ControlClass), nullString(doc.WrapperClass), now, now); err != nil {
			return fmt.Errorf("upsert control set: %w", err)
		}

		var id string
		if err := tx.QueryRowContext(ctx, `SELECT id FROM control_sets WHERE name = ?`, s.Name).Scan(&id); err != nil {
			return fmt.Errorf("control set id: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM controls WHERE set_id = ?`, id); err != nil {
			return fmt.Errorf("clear controls: %w", err)
		}

		for pos, c := range doc.Controls {
			label, err := encodeOptional(c.Label)
			if err != nil {
				return fmt.Errorf("control %q label: %w", c.Key, err)
			}
			icon, err := encodeOptional(c.Icon)
			if err != nil {
				return fmt.Errorf("control %q icon: %w", c.Key, err)
			}
			thisArg, err := encodeOptional(c.ThisArg)
			if err != nil {
				return fmt.Errorf("control %q thisArg: %w", c.Key, err)
			}
			var args sql.NullString
			if c.Args != nil {
				if args, err = encodeOptional(c.Args); err != nil {
					return fmt.Errorf("control %q args: %w", c.Key, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO controls(set_id, key, position, label, icon, tag, func, callback, fn, this_arg, args)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, id, c.Key, pos, label, icon, c.Tag, c.Func, c.Callback, c.Fn, thisArg, args); err != nil {
				return fmt.Errorf("insert control %q: %w", c.Key, err)
			}
			for apos, a := range c.Attr {
				if _, err := tx.ExecContext(ctx, `
				INSERT INTO control_attrs(set_id, control_key, position, name, value) VALUES (?, ?, ?, ?, ?)
				`, id, c.Key, apos, a.Name, a.Value); err != nil {
					return fmt.Errorf("insert attr %q of %q: %w", a.Name, c.Key, err)
				}
			}
		}
		return nil
	})
}

// ByName returns the named set, or nil when it does not exist.
func (r *ControlSetRepo) ByName(ctx context.Context, name string) (*ControlSet, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, capitalize_labels, control_class, wrapper_class, created_at, updated_at
	FROM control_sets WHERE name = ?`, name)
	var (
		s          ControlSet
		capitalize sql.NullBool
		ctrlClass  sql.NullString
		wrapClass  sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &capitalize, &ctrlClass, &wrapClass, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	doc := &manifest.Document{}
	if capitalize.Valid {
		doc.CapitalizeLabels = &capitalize.Bool
	}
	if ctrlClass.Valid {
		doc.ControlClass = &ctrlClass.String
	}
	if wrapClass.Valid {
		doc.WrapperClass = &wrapClass.String
	}

	controls, err := r.controls(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	doc.Controls = controls
	s.Document = doc
	return &s, nil
}

func (r *ControlSetRepo) controls(ctx context.Context, setID string) ([]manifest.Control, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT key, label, icon, tag, func, callback, fn, this_arg, args
	FROM controls WHERE set_id = ? ORDER BY position`, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []manifest.Control
	for rows.Next() {
		var (
			c                      manifest.Control
			label, icon, this, arg sql.NullString
		)
		if err := rows.Scan(&c.Key, &label, &icon, &c.Tag, &c.Func, &c.Callback, &c.Fn, &this, &arg); err != nil {
			return nil, err
		}
		if c.Label, err = decodeOptional(label); err != nil {
			return nil, fmt.Errorf("control %q label: %w", c.Key, err)
		}
		if c.Icon, err = decodeOptional(icon); err != nil {
			return nil, fmt.Errorf("control %q icon: %w", c.Key, err)
		}
		if c.ThisArg, err = decodeOptional(this); err != nil {
			return nil, fmt.Errorf("control %q thisArg: %w", c.Key, err)
		}
		args, err := decodeOptional(arg)
		if err != nil {
			return nil, fmt.Errorf("control %q args: %w", c.Key, err)
		}
		if args != nil {
			list, ok := args.([]any)
			if !ok {
				return nil, fmt.Errorf("control %q args: stored value is %T, not a list", c.Key, args)
			}
			c.Args = list
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		attrs, err := r.attrs(ctx, setID, out[i].Key)
		if err != nil {
			return nil, err
		}
		out[i].Attr = attrs
	}
	return out, nil
}

func (r *ControlSetRepo) attrs(ctx context.Context, setID, key string) (dom.Attrs, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT name, value FROM control_attrs WHERE set_id = ? AND control_key = ? ORDER BY position`, setID, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out dom.Attrs
	for rows.Next() {
		var a dom.Attr
		if err := rows.Scan(&a.Name, &a.Value); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// List returns every stored set ordered by name.
func (r *ControlSetRepo) List(ctx context.Context) ([]ControlSetSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.id, s.name, COUNT(c.key), s.updated_at
	FROM control_sets s LEFT JOIN controls c ON c.set_id = s.id
	GROUP BY s.id ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ControlSetSummary
	for rows.Next() {
		var s ControlSetSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Controls, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes the named set and reports whether it existed.
func (r *ControlSetRepo) Delete(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM control_sets WHERE name = ?`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// encodeOptional stores loosely typed values as YAML; nil is NULL.
func encodeOptional(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	s, err := manifest.EncodeValue(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}

func decodeOptional(s sql.NullString) (any, error) {
	if !s.Valid {
		return nil, nil
	}
	return manifest.DecodeValue(s.String)
}
