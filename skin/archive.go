package skin

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Archive presents a skin source as a case-insensitive fs.FS. Skins ship
// as .wsz/.zip archives or unpacked directories, with file name casing
// that varies per author (MAIN.BMP vs main.bmp); lookups here ignore
// case. An archive whose only root entry is a directory is unwrapped
// transparently, which is how most hand-zipped skins arrive.
type Archive struct {
	fsys  fs.FS
	names map[string]string // lower-cased name -> actual name
}

// OpenArchive opens a skin directory or zip archive. Unreadable zip data
// fails with ErrArchiveCorrupt.
func OpenArchive(path string) (*Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var fsys fs.FS
	if info.IsDir() {
		fsys = os.DirFS(path)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchiveCorrupt, path, err)
		}
		fsys = zr
	}
	return newArchive(fsys)
}

func newArchive(fsys fs.FS) (*Archive, error) {
	fsys, err := unwrapRoot(fsys)
	if err != nil {
		return nil, err
	}

	a := &Archive{fsys: fsys, names: make(map[string]string)}
	err = fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		key := strings.ToLower(name)
		if _, ok := a.names[key]; !ok {
			a.names[key] = name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
	}
	return a, nil
}

// unwrapRoot descends into a single wrapper directory when the archive
// root holds nothing else.
func unwrapRoot(fsys fs.FS) (fs.FS, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return fs.Sub(fsys, entries[0].Name())
	}
	return fsys, nil
}

// Open implements fs.FS with case-insensitive names.
func (a *Archive) Open(name string) (fs.File, error) {
	actual, ok := a.names[strings.ToLower(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return a.fsys.Open(actual)
}

// ReadFile reads a whole archive member, case-insensitively.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	actual, ok := a.names[strings.ToLower(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(a.fsys, actual)
}

// Has reports whether the archive holds a member of that name.
func (a *Archive) Has(name string) bool {
	_, ok := a.names[strings.ToLower(name)]
	return ok
}

// Names lists the archive members in their original casing, sorted.
func (a *Archive) Names() []string {
	out := make([]string, 0, len(a.names))
	for _, name := range a.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
