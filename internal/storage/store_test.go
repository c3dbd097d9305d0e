package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/glyphgarden/internal/export"
	"github.com/san-kum/glyphgarden/internal/seed"
)

func testData() export.ExportData {
	return export.ExportData{
		Seeds:   seed.Seeds{Uniform: 20261017, Noise: 2053},
		Tick:    90,
		Glyph:   "Q",
		Width:   640,
		Height:  480,
		Chars:   "QRS",
		Palette: []string{"#e63946"},
		Density: 2,
		Elements: []export.ElementData{
			{ID: 1, Kind: "flower", X: 10.5, Y: 20.25, Size: 42, Angle: 0.5, Color: "#e63946"},
			{ID: 2, Kind: "leaf", X: 300, Y: 400, Size: 31, Angle: 1.25, Color: "#e63946"},
		},
	}
}

func writeStub(w io.Writer) error {
	_, err := io.WriteString(w, "<svg></svg>")
	return err
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	snapID, err := st.Save("2026-10-17", testData(), writeStub)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if snapID == "" {
		t.Error("expected non-empty snapshot id")
	}

	meta, err := st.Load(snapID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Day != "2026-10-17" {
		t.Errorf("expected day '2026-10-17', got '%s'", meta.Day)
	}

	if meta.Seeds.Uniform != 20261017 || meta.Seeds.Noise != 2053 {
		t.Errorf("unexpected seeds %+v", meta.Seeds)
	}

	if meta.Elements != 2 {
		t.Errorf("expected 2 elements, got %d", meta.Elements)
	}

	elements, err := st.LoadElements(snapID)
	if err != nil {
		t.Fatalf("load elements failed: %v", err)
	}

	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}

	if elements[0].X != 10.5 || elements[0].Y != 20.25 || elements[1].Kind != "leaf" {
		t.Errorf("unexpected elements %+v", elements)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	snaps, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(snaps) != 0 {
		t.Errorf("expected 0 snapshots, got %d", len(snaps))
	}

	base := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	calls := 0
	st.now = func() time.Time {
		calls++
		return base.Add(-time.Duration(calls) * time.Minute)
	}

	first, err := st.Save("", testData(), writeStub)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save("", testData(), writeStub)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snaps, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}

	if snaps[0].ID != second || snaps[1].ID != first {
		t.Errorf("expected oldest first, got %s, %s", snaps[0].ID, snaps[1].ID)
	}
}

func TestStoreSameSecond(t *testing.T) {
	st := New(t.TempDir())
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }

	a, err := st.Save("2026-10-17", testData(), writeStub)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	b, err := st.Save("2026-10-17", testData(), writeStub)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if a == b {
		t.Errorf("ids collide: %s", a)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	snapID, err := st.Save("2026-10-17", testData(), writeStub)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snapDir := filepath.Join(tmpDir, snapID)
	for _, name := range []string{"metadata.json", "elements.csv", "snapshot.svg"} {
		if _, err := os.Stat(filepath.Join(snapDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	if st.ImagePath(snapID) != filepath.Join(snapDir, "snapshot.svg") {
		t.Errorf("unexpected image path %s", st.ImagePath(snapID))
	}
}

func TestStoreSaveImageError(t *testing.T) {
	st := New(t.TempDir())
	boom := errors.New("boom")

	_, err := st.Save("", testData(), func(io.Writer) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped image error, got %v", err)
	}

	snaps, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("failed snapshot still listed: %+v", snaps)
	}
	entries, err := os.ReadDir(st.Dir())
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected snapshot dir removed, found %d entries", len(entries))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
