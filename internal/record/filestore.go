package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// writeRecord is replaced in tests to simulate a failed write.
var writeRecord = func(f *os.File, data []byte) error {
	_, err := f.Write(data)
	return err
}

// FileStore writes one JSON file per assessment under <base>/<user_id>/.
// Files are created exclusively and never rewritten.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("record.NewFileStore: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Create(a *Assessment) error {
	dir := s.userPath(a.UserID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("record.FileStore.Create: %w", err)
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("record.FileStore.Create: marshal: %w", err)
	}

	f, err := os.OpenFile(s.filePath(a.UserID, a.ID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("record.FileStore.Create: %s: %w", a.ID, ErrExists)
		}
		return fmt.Errorf("record.FileStore.Create: %w", err)
	}
	path := f.Name()
	if err := writeRecord(f, append(data, '\n')); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("record.FileStore.Create: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("record.FileStore.Create: %w", err)
	}
	return nil
}

func (s *FileStore) Get(userID int, id string) (*Assessment, error) {
	a, err := readAssessment(s.filePath(userID, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("record.FileStore.Get: %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("record.FileStore.Get: %w", err)
	}
	return a, nil
}

// Unreadable names a stored file that could not be read or decoded.
type Unreadable struct {
	File string
	Err  error
}

// ListByUser returns the user's readable assessments, newest first.
// Files that cannot be read or decoded are skipped; use ListByUserReport
// to see them.
func (s *FileStore) ListByUser(userID int) ([]*Assessment, error) {
	list, _, err := s.ListByUserReport(userID)
	return list, err
}

// ListByUserReport is ListByUser plus the files it skipped. The error is
// reserved for failures to read the user's directory itself.
func (s *FileStore) ListByUserReport(userID int) ([]*Assessment, []Unreadable, error) {
	entries, err := os.ReadDir(s.userPath(userID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("record.FileStore.ListByUser: %w", err)
	}

	var (
		list    []*Assessment
		skipped []Unreadable
	)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		a, err := readAssessment(filepath.Join(s.userPath(userID), e.Name()))
		if err != nil {
			skipped = append(skipped, Unreadable{File: e.Name(), Err: err})
			continue
		}
		list = append(list, a)
	}
	sortNewestFirst(list)
	return list, skipped, nil
}

func (s *FileStore) userPath(userID int) string {
	return filepath.Join(s.basePath, strconv.Itoa(userID))
}

func (s *FileStore) filePath(userID int, id string) string {
	return filepath.Join(s.userPath(userID), filepath.Base(id)+".json")
}

func readAssessment(path string) (*Assessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &a, nil
}
