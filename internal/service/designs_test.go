package service

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/qnl/chipsmith/internal/database"
	"github.com/qnl/chipsmith/internal/database/repository"
)

func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	f, err := os.CreateTemp("", "chipsmith-svc-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := database.Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		os.Remove(path)
		t.Fatalf("migrate: %v", err)
	}
	return db, func() {
		db.Close()
		os.Remove(path)
	}
}

func TestOpenCreatesWhenAbsent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	ctx := context.Background()
	svc := &DesignService{Designs: repository.NewDesignRepo(db)}

	d, err := svc.Open(ctx, "fresh")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if d.Name != "fresh" || d.Len() != 0 {
		t.Errorf("fresh design = %q len %d", d.Name, d.Len())
	}

	// Opening again returns the persisted design, not a second copy.
	if _, err := d.Add("Transmon", "Q1", nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save(ctx, d); err != nil {
		t.Fatal(err)
	}
	again, err := svc.Open(ctx, "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if again.UUID != d.UUID || again.Len() != 1 {
		t.Errorf("reopen = %q len %d", again.UUID, again.Len())
	}
}

func TestCreateRejectsExisting(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	ctx := context.Background()
	svc := &DesignService{Designs: repository.NewDesignRepo(db)}

	if _, err := svc.Create(ctx, "chip1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "chip1"); err == nil {
		t.Error("second create of same name succeeded")
	}
}

func TestDeleteDesign(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	ctx := context.Background()
	svc := &DesignService{Designs: repository.NewDesignRepo(db)}

	if _, err := svc.Open(ctx, "doomed"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "doomed"); err != nil {
		t.Fatal(err)
	}
	infos, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 0 {
		t.Errorf("list after delete = %v", infos)
	}
}

func TestMaintenanceReset(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	ctx := context.Background()
	svc := &DesignService{Designs: repository.NewDesignRepo(db)}

	d, err := svc.Open(ctx, "chip")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Add("Transmon", "Q1", nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save(ctx, d); err != nil {
		t.Fatal(err)
	}

	m := &MaintenanceService{DB: db}
	if err := m.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, table := range []string{"designs", "components", "component_deps"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("table %s not emptied: %d rows", table, count)
		}
	}
}
