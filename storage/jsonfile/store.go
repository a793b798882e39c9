package jsonfile

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/msms/core/school"
)

const backupStampLayout = "20060102_150405"

var (
	requiredKeys = []string{"students", "teachers", "courses"}

	nowFunc = time.Now // mockable
)

// Store persists the whole Document as one pretty-printed JSON file.
type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// Load reads and decodes the data file.
// A missing file is reported as school.ErrNoDocument.
func (s *Store) Load() (school.Document, error) {
	var doc school.Document

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, errors.Wrapf(school.ErrNoDocument, "%s does not exist", s.Path)
		}
		return doc, errors.Wrapf(err, "reading %s", s.Path)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return doc, errors.Wrapf(err, "decoding %s", s.Path)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return doc, errors.Errorf("%s: missing %q", s.Path, key)
		}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return school.Document{}, errors.Wrapf(err, "decoding %s", s.Path)
	}
	return doc, nil
}

// Save overwrites the data file with doc, creating parent directories as needed.
func (s *Store) Save(doc school.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", s.Path)
	}
	return nil
}

// Backup copies the file at path into dir as <stem>_YYYYMMDD_HHMMSS<ext> and returns the copy's path.
// It returns "" when there is no file to back up.
func Backup(path, dir string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "opening %s", path)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + "_" + nowFunc().Format(backupStampLayout) + ext
	dst := filepath.Join(dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", dst)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", errors.Wrapf(err, "copying to %s", dst)
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %s", dst)
	}
	return dst, nil
}
