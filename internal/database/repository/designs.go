// Package repository persists designs and their components to sqlite.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/qnl/chipsmith/internal/database"
	"github.com/qnl/chipsmith/internal/design"
)

// ErrNoDesign is returned when a design row does not exist.
var ErrNoDesign = errors.New("repository: design not found")

// DesignRepo handles designs and their component rows.
type DesignRepo struct {
	db *sql.DB
}

func NewDesignRepo(db *sql.DB) *DesignRepo {
	return &DesignRepo{db: db}
}

// Save writes a full snapshot of the design in one transaction: the design
// row is upserted and its component and dependency rows replaced.
func (r *DesignRepo) Save(ctx context.Context, d *design.Design) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		now := database.Now().Format(time.RFC3339)
		_, err := tx.ExecContext(ctx, `
	INSERT INTO designs(uuid, name, overwrite, next_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(uuid) DO UPDATE SET
	 name=excluded.name,
	 overwrite=excluded.overwrite,
	 next_id=excluded.next_id,
	 updated_at=excluded.updated_at;
	`, d.UUID, d.Name, boolInt(d.OverwriteEnabled()), d.NextID(), now, now)
		if err != nil {
			return fmt.Errorf("save design %q: %w", d.Name, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM components WHERE design_uuid = ?`, d.UUID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM component_deps WHERE design_uuid = ?`, d.UUID); err != nil {
			return err
		}

		for pos, c := range d.Components() {
			opts, err := encodeOptions(c.Options)
			if err != nil {
				return fmt.Errorf("component %q: %w", c.Name, err)
			}
			_, err = tx.ExecContext(ctx, `
	INSERT INTO components(design_uuid, comp_id, name, class, options, position, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.UUID, c.ID, c.Name, c.Class, opts, pos,
				c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("save component %q: %w", c.Name, err)
			}
		}

		for _, edge := range d.DependencyEdges() {
			_, err := tx.ExecContext(ctx, `
	INSERT INTO component_deps(design_uuid, dependent_id, dependency_id)
	VALUES (?, ?, ?)
	`, d.UUID, edge[0], edge[1])
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Load rebuilds a design from its rows, restoring insertion order and the
// ID allocation counter.
func (r *DesignRepo) Load(ctx context.Context, uuid string) (*design.Design, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT uuid, name, overwrite, next_id FROM designs WHERE uuid = ?`, uuid)
	return r.load(ctx, row)
}

// LoadByName loads a design by its unique display name.
func (r *DesignRepo) LoadByName(ctx context.Context, name string) (*design.Design, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT uuid, name, overwrite, next_id FROM designs WHERE name = ?`, name)
	return r.load(ctx, row)
}

func (r *DesignRepo) load(ctx context.Context, row *sql.Row) (*design.Design, error) {
	var (
		uuid, name string
		overwrite  int
		nextID     int
	)
	if err := row.Scan(&uuid, &name, &overwrite, &nextID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDesign
		}
		return nil, err
	}

	d := design.New(name)
	d.UUID = uuid
	d.EnableOverwrite(overwrite != 0)
	d.RestoreNextID(nextID)

	rows, err := r.db.QueryContext(ctx, `
	SELECT comp_id, name, class, options, created_at, updated_at
	FROM components WHERE design_uuid = ? ORDER BY position
	`, uuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id                   int
			cname, class, opts   string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&id, &cname, &class, &opts, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		options, err := decodeOptions(opts)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", cname, err)
		}
		c := &design.Component{
			ID:        id,
			Name:      cname,
			Class:     class,
			Options:   options,
			CreatedAt: parseTime(createdAt),
			UpdatedAt: parseTime(updatedAt),
		}
		if err := d.Restore(c); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	deps, err := r.db.QueryContext(ctx, `
	SELECT dependent_id, dependency_id FROM component_deps WHERE design_uuid = ?
	`, uuid)
	if err != nil {
		return nil, err
	}
	defer deps.Close()
	for deps.Next() {
		var from, to int
		if err := deps.Scan(&from, &to); err != nil {
			return nil, err
		}
		if err := d.RestoreDependency(from, to); err != nil {
			return nil, err
		}
	}
	return d, deps.Err()
}

// List returns summaries of all persisted designs, newest first.
func (r *DesignRepo) List(ctx context.Context) ([]DesignInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT d.uuid, d.name, d.updated_at, COUNT(c.comp_id)
	FROM designs d LEFT JOIN components c ON c.design_uuid = d.uuid
	GROUP BY d.uuid ORDER BY d.updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DesignInfo
	for rows.Next() {
		var (
			info      DesignInfo
			updatedAt string
		)
		if err := rows.Scan(&info.UUID, &info.Name, &updatedAt, &info.Components); err != nil {
			return nil, err
		}
		info.UpdatedAt = parseTime(updatedAt)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a design; component and dependency rows cascade.
func (r *DesignRepo) Delete(ctx context.Context, uuid string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM designs WHERE uuid = ?`, uuid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoDesign
	}
	return nil
}

func encodeOptions(o *design.Options) (string, error) {
	pairs := make([]optionPair, 0, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		pairs = append(pairs, optionPair{K: k, V: v})
	}
	b, err := json.Marshal(pairs)
	return string(b), err
}

func decodeOptions(raw string) (*design.Options, error) {
	var pairs []optionPair
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, err
	}
	o := design.NewOptions()
	for _, p := range pairs {
		o.Set(p.K, p.V)
	}
	return o, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
