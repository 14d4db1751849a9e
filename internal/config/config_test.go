package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("API_BASE_URL", "http://inventory.local/api/")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("MIRROR_DRIVER", "Redis")
	t.Setenv("RECEIVING_SUPPLIERS", "Royal, San Miguel ,,Coca-Cola")

	cfg := Load()

	if cfg.API.BaseURL != "http://inventory.local/api/" || cfg.API.Timeout != 5*time.Second {
		t.Fatalf("api = %+v", cfg.API)
	}
	if cfg.Mirror.Driver != "redis" || cfg.Mirror.Key != "receivedItems" {
		t.Fatalf("mirror = %+v", cfg.Mirror)
	}
	want := []string{"Royal", "San Miguel", "Coca-Cola"}
	if len(cfg.Receiving.Suppliers) != len(want) {
		t.Fatalf("suppliers = %q", cfg.Receiving.Suppliers)
	}
	for i := range want {
		if cfg.Receiving.Suppliers[i] != want[i] {
			t.Fatalf("suppliers = %q", cfg.Receiving.Suppliers)
		}
	}
	if cfg.Receiving.DefaultWarehouseID != 1 || cfg.Database.Driver != "sqlite" {
		t.Fatalf("receiving = %+v, db = %+v", cfg.Receiving, cfg.Database)
	}
}

// chdir switches the working directory for the test and restores it on cleanup
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
