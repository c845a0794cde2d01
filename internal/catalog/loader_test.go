package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sinavyolu/lgs-backend/internal/catalog"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_OrdersUnits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "oranti.yaml", `
id: mat8-02
name: Oran ve Orantı
subject: matematik
grade: 8
order: 2
`)
	writeFile(t, dir, "carpanlar.yaml", `
id: mat8-01
name: Çarpanlar ve Katlar
subject: matematik
grade: 8
order: 1
`)
	writeFile(t, dir, "notes.md", "not a unit")

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ids := c.UnitIDs()
	want := []string{"mat8-01", "mat8-02"}
	if len(ids) != len(want) {
		t.Fatalf("UnitIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("UnitIDs()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestLoad_DerivesSlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "islemler.yaml", `
id: mat8-03
name: Üslü İfadeler
subject: matematik
grade: 8
order: 3
`)

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	unit, ok := c.Get("mat8-03")
	if !ok {
		t.Fatal("Get(mat8-03) not found")
	}
	if unit.Slug != "uslu-ifadeler" {
		t.Errorf("Slug = %q, want uslu-ifadeler", unit.Slug)
	}
}

func TestLoad_RejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "missing subject",
			doc: `
id: mat8-01
name: Çarpanlar
grade: 8
order: 1
`,
			wantErr: "subject",
		},
		{
			name: "grade out of range",
			doc: `
id: mat8-01
name: Çarpanlar
subject: matematik
grade: 99
order: 1
`,
			wantErr: "grade",
		},
		{
			name: "unknown field",
			doc: `
id: mat8-01
name: Çarpanlar
subject: matematik
grade: 8
order: 1
difficulty: hard
`,
			wantErr: "difficulty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "unit.yaml", tt.doc)

			_, err := catalog.Load(dir)
			if err == nil {
				t.Fatal("Load() should reject invalid document")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_SkipsNonUnitYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "log_level: debug\n")

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestFromUnits_DuplicateID(t *testing.T) {
	_, err := catalog.FromUnits([]catalog.Unit{
		{ID: "mat8-01", Name: "A", Subject: "matematik", Grade: 8, Order: 1},
		{ID: "mat8-01", Name: "B", Subject: "matematik", Grade: 8, Order: 2},
	})
	if err == nil {
		t.Fatal("FromUnits() should reject duplicate unit IDs")
	}
}
