package entity

import (
	"path/filepath"
	"strings"
)

// AcceptFilter is the file-picker hint shown to users. It is advisory only;
// nothing rejects a file because of its extension.
const AcceptFilter = ".pdf,.xlsx,.xls,.png,.jpg,.jpeg"

//nolint:gochecknoglobals // lookup table
var fileKinds = map[string]FileKind{
	"pdf":  FileKindPDF,
	"xlsx": FileKindSpreadsheet,
	"xls":  FileKindSpreadsheet,
	"png":  FileKindImage,
	"jpg":  FileKindImage,
	"jpeg": FileKindImage,
}

// File is the single document a user picked for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the number of bytes held.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Kind derives the document family from the file extension.
func (f File) Kind() FileKind {
	return fileKinds[NormalizeExt(filepath.Ext(f.Name))]
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
