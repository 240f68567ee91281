package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"commerce-dashboard/internal/models"
)

const snapshotVersion = "v1"

// Snapshot stores unified records on disk, gob encoded and snappy
// compressed, keyed by a fingerprint of the source files. Changing any
// source changes the key, so a new process re-unifies.
type Snapshot struct {
	dir string
}

func NewSnapshot(dir string) *Snapshot {
	return &Snapshot{dir: dir}
}

// Enabled reports whether a cache directory was configured.
func (s *Snapshot) Enabled() bool {
	return s != nil && s.dir != ""
}

// Fingerprint hashes the path, size and modification time of every source.
func (s *Snapshot) Fingerprint(src Sources) (string, error) {
	h := sha256.New()
	for _, np := range src.paths() {
		info, err := os.Stat(np.path)
		if err != nil {
			return "", &LoadError{File: np.path, Err: err}
		}
		fmt.Fprintf(h, "%s|%s|%d|%d\n", np.name, np.path, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

func (s *Snapshot) filename(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf("unified_%s_%s.gob.sz", key, snapshotVersion))
}

func (s *Snapshot) Save(key string, records []models.Record) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(records); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "unified-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(snappy.Encode(nil, buf.Bytes())); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.filename(key))
}

func (s *Snapshot) Load(key string) ([]models.Record, error) {
	compressed, err := os.ReadFile(s.filename(key))
	if err != nil {
		return nil, err
	}

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var records []models.Record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	// gob does not transmit a pointer to a zero value, so a 0% margin
	// would come back as nil.
	for i := range records {
		records[i].ProfitMargin = ProfitMargin(records[i].TotalPrice, records[i].UnitPrice)
	}
	return records, nil
}
