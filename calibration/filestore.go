/*
NAME
  filestore.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// FileStore persists one Record per serial as a JSON file under Dir, named
// "<serial>.json". Validation on load follows spec.md §6: a record whose
// dark_ref/white_cal_factors arrays don't decode to exactly 137/36 entries
// is treated as absent rather than failing the whole load.
type FileStore struct {
	Dir string
	l   logging.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	onChange func(serial string)
}

// NewFileStore returns a FileStore rooted at dir, creating dir if it
// doesn't exist.
func NewFileStore(dir string, l logging.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("calibration: create store dir: %w", err)
	}
	return &FileStore{Dir: dir, l: l}, nil
}

func (s *FileStore) path(serial string) string {
	return filepath.Join(s.Dir, serial+".json")
}

// Load reads the Record for serial. A missing file, unparsable JSON, or a
// record with arrays of the wrong length is reported as "absent" (ok=false)
// rather than an error, per spec.md §6's validation rule.
func (s *FileStore) Load(serial string) (Record, bool, error) {
	data, err := os.ReadFile(s.path(serial))
	if os.IsNotExist(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("calibration: read %s: %w", serial, err)
	}

	var raw struct {
		Serial          string    `json:"serial"`
		Timestamp       int64     `json:"timestamp"`
		DarkRef         []uint16  `json:"dark_ref"`
		WhiteCalFactors []float64 `json:"white_cal_factors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.l.Warning("calibration: malformed record, treating as absent", "serial", serial, "error", err.Error())
		return Record{}, false, nil
	}
	if len(raw.DarkRef) != 137 || len(raw.WhiteCalFactors) != 36 {
		s.l.Warning("calibration: record has wrong field lengths, treating as absent",
			"serial", serial, "dark_ref_len", len(raw.DarkRef), "white_len", len(raw.WhiteCalFactors))
		return Record{}, false, nil
	}

	rec := Record{Serial: raw.Serial, Timestamp: raw.Timestamp}
	copy(rec.DarkRef[:], raw.DarkRef)
	copy(rec.WhiteCalFactors[:], raw.WhiteCalFactors)
	return rec, true, nil
}

// Save writes rec as <dir>/<serial>.json, overwriting any existing file.
func (s *FileStore) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("calibration: marshal record: %w", err)
	}
	if err := os.WriteFile(s.path(rec.Serial), data, 0o644); err != nil {
		return fmt.Errorf("calibration: write %s: %w", rec.Serial, err)
	}
	return nil
}

// Watch starts an fsnotify watch on Dir and invokes onChange(serial)
// whenever a record file is written externally (e.g. a companion process
// recalibrating the same device). Call Close to stop watching.
func (s *FileStore) Watch(onChange func(serial string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("calibration: start watcher: %w", err)
	}
	if err := w.Add(s.Dir); err != nil {
		w.Close()
		return fmt.Errorf("calibration: watch %s: %w", s.Dir, err)
	}

	s.mu.Lock()
	s.watcher = w
	s.onChange = onChange
	s.mu.Unlock()

	go s.watchLoop(w)
	return nil
}

func (s *FileStore) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			serial := filepath.Base(ev.Name)
			serial = serial[:len(serial)-len(filepath.Ext(serial))]
			s.l.Debug("calibration: record changed on disk", "serial", serial)
			s.mu.Lock()
			cb := s.onChange
			s.mu.Unlock()
			if cb != nil {
				cb(serial)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.l.Error("calibration: watcher error", "error", err.Error())
		}
	}
}

// Close stops any active watch.
func (s *FileStore) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
