package inbound

import (
	"bytes"
	"io"
	"mime"
	"net/http"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/extraction/table"
	"github.com/shandysiswandi/extractview/internal/extraction/upload"
)

type WorkspaceResponse struct {
	WorkspaceID string              `json:"workspace_id"`
	ActiveTab   entity.Kind         `json:"active_tab"`
	UploadOpen  bool                `json:"upload_open"`
	Upload      upload.Snapshot     `json:"upload"`
	Counts      map[entity.Kind]int `json:"counts"`
}

type TableResponse struct {
	table.View
}

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type WorkbookResponse struct {
	data []byte
}

func (WorkbookResponse) ContentType() string {
	return workbookContentType
}

func (WorkbookResponse) Headers() http.Header {
	return http.Header{
		"Content-Disposition": {mime.FormatMediaType("attachment", map[string]string{"filename": "extraction.xlsx"})},
	}
}

func (r WorkbookResponse) Render(w io.Writer) error {
	_, err := io.Copy(w, bytes.NewReader(r.data))
	return err
}
