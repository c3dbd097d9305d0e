package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/glyphgarden/internal/export"
	"github.com/san-kum/glyphgarden/internal/seed"
)

const (
	metadataFile = "metadata.json"
	imageFile    = "snapshot.svg"
	elementsFile = "elements.csv"
)

var ErrNotFound = errors.New("snapshot not found")

// Store keeps snapshots as one directory each under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type SnapshotMetadata struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Day       string     `json:"day,omitempty"`
	Seeds     seed.Seeds `json:"seeds"`
	Tick      uint64     `json:"tick"`
	Glyph     string     `json:"glyph"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Chars     string     `json:"chars"`
	Palette   []string   `json:"palette"`
	Density   int        `json:"density"`
	Elements  int        `json:"elements"`
}

// Save writes the metadata, the element table and the SVG drawn by
// writeSVG into a fresh snapshot directory and returns its id.
func (s *Store) Save(day string, data export.ExportData, writeSVG func(io.Writer) error) (_ string, err error) {
	now := s.now()
	snapID := s.freeID(fmt.Sprintf("%s_t%d_%d", dayOr(day), data.Tick, now.Unix()))
	snapDir := filepath.Join(s.baseDir, snapID)

	if err := os.MkdirAll(snapDir, 0755); err != nil {
		return "", err
	}
	// a half-written snapshot would still show up in List
	defer func() {
		if err != nil {
			os.RemoveAll(snapDir)
		}
	}()

	meta := SnapshotMetadata{
		ID:        snapID,
		Timestamp: now,
		Day:       day,
		Seeds:     data.Seeds,
		Tick:      data.Tick,
		Glyph:     data.Glyph,
		Width:     data.Width,
		Height:    data.Height,
		Chars:     data.Chars,
		Palette:   data.Palette,
		Density:   data.Density,
		Elements:  len(data.Elements),
	}

	metaFile, err := os.Create(filepath.Join(snapDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeElements(filepath.Join(snapDir, elementsFile), data.Elements); err != nil {
		return "", err
	}

	img, err := os.Create(filepath.Join(snapDir, imageFile))
	if err != nil {
		return "", err
	}
	defer img.Close()

	if err := writeSVG(img); err != nil {
		return "", fmt.Errorf("write %s: %w", imageFile, err)
	}

	return snapID, nil
}

func writeElements(path string, elements []export.ElementData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"id", "kind", "x", "y", "size", "angle", "color"}); err != nil {
		return err
	}
	for _, e := range elements {
		row := []string{
			strconv.FormatUint(e.ID, 10),
			e.Kind,
			strconv.FormatFloat(e.X, 'f', 3, 64),
			strconv.FormatFloat(e.Y, 'f', 3, 64),
			strconv.FormatFloat(e.Size, 'f', 3, 64),
			strconv.FormatFloat(e.Angle, 'f', 6, 64),
			e.Color,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func dayOr(day string) string {
	if day == "" {
		return "fixed"
	}
	return day
}

// freeID appends a counter until the id names no existing directory.
func (s *Store) freeID(id string) string {
	candidate := id
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		snaps = append(snaps, *meta)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(snapID string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, snapID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, snapID)
		}
		return nil, err
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ImagePath is where the SVG of a snapshot lives.
func (s *Store) ImagePath(snapID string) string {
	return filepath.Join(s.baseDir, snapID, imageFile)
}

// LoadElements reads back the element table: positions and sizes per id.
func (s *Store) LoadElements(snapID string) ([]export.ElementData, error) {
	file, err := os.Open(filepath.Join(s.baseDir, snapID, elementsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []export.ElementData{}, nil
	}

	out := make([]export.ElementData, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 7 {
			continue
		}
		id, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			continue
		}
		e := export.ElementData{ID: id, Kind: record[1], Color: record[6]}
		e.X, _ = strconv.ParseFloat(record[2], 64)
		e.Y, _ = strconv.ParseFloat(record[3], 64)
		e.Size, _ = strconv.ParseFloat(record[4], 64)
		e.Angle, _ = strconv.ParseFloat(record[5], 64)
		out = append(out, e)
	}

	return out, nil
}
