package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"time"
)

// Archive writes the bundle's files to w as a zip under a top-level folder
func Archive(bundle *Bundle, root string, w io.Writer) error {
	zw := zip.NewWriter(w)
	modified := time.Now()

	for _, f := range bundle.Files {
		header := &zip.FileHeader{
			Name:     path.Join(root, f.Path),
			Method:   zip.Deflate,
			Modified: modified,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("add %s: %w", f.Path, err)
		}
		if _, err := io.WriteString(fw, f.Content); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}
