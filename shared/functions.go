package shared

import "io/fs"

// EmbeddedFileToString reads one file of an embedded (or any) file system as a string.
func EmbeddedFileToString(fsys fs.FS, path string) (string, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
