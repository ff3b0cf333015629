package db

import (
	"testing"

	"github.com/zulandar/trackside/internal/config"
	"github.com/zulandar/trackside/internal/models"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		database string
		want     string
	}{
		{
			name:     "default local",
			host:     "127.0.0.1",
			port:     3306,
			database: "trackside",
			want:     "root@tcp(127.0.0.1:3306)/trackside?parseTime=true",
		},
		{
			name:     "custom host and port",
			host:     "10.0.0.5",
			port:     3307,
			database: "trackside_prod",
			want:     "root@tcp(10.0.0.5:3307)/trackside_prod?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DSN(tt.host, tt.port, tt.database)
			if got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	gdb, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate() error: %v", err)
	}

	for _, m := range AllModels() {
		if !gdb.Migrator().HasTable(m) {
			t.Errorf("missing table for model %T", m)
		}
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "postgres"})
	if err == nil {
		t.Fatal("expected error for unsupported driver, got nil")
	}
}

func TestSeedAdmin_Upsert(t *testing.T) {
	gdb, err := ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("ConnectSQLite() error: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate() error: %v", err)
	}

	first, err := SeedAdmin(gdb, "Ops Admin", "ops@example.com")
	if err != nil {
		t.Fatalf("SeedAdmin() error: %v", err)
	}
	if first.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want ADMIN", first.Role)
	}

	// Second seed with the same email must not create a duplicate.
	second, err := SeedAdmin(gdb, "Renamed Admin", "ops@example.com")
	if err != nil {
		t.Fatalf("SeedAdmin() second call error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second seed created new user %q, want %q", second.ID, first.ID)
	}
	if second.Name != "Renamed Admin" {
		t.Errorf("Name = %q, want updated name", second.Name)
	}

	var count int64
	if err := gdb.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}
