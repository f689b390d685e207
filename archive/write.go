package archive

import (
	"archive/zip"
	"os"
	"strings"
)

// Member describes one entry to be written by WriteZip.
type Member struct {
	Name string
	Data []byte
	Dir  bool
}

// WriteZip creates (or replaces) the archive at dest containing members in the
// given order. Directory members are stored with a trailing slash.
func WriteZip(dest string, members []Member) (err error) {
	for _, m := range members {
		if strings.Trim(m.Name, "/") == "" {
			return ErrEmptyMemberName
		}
	}

	os.Remove(dest)
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := zip.NewWriter(file)
	for _, m := range members {
		if m.Dir {
			name := strings.TrimSuffix(m.Name, "/") + "/"
			if _, createErr := w.Create(name); createErr != nil {
				return createErr
			}
			continue
		}
		writer, createErr := w.Create(m.Name)
		if createErr != nil {
			return createErr
		}
		if _, writeErr := writer.Write(m.Data); writeErr != nil {
			return writeErr
		}
	}
	return w.Close()
}
