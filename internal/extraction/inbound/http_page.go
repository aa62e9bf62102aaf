package inbound

import (
	"embed"
	"html/template"
	"io"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/extraction/table"
	"github.com/shandysiswandi/extractview/internal/extraction/upload"
	"github.com/shandysiswandi/extractview/internal/extraction/usecase"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgerror"
)

//go:embed templates/page.html
var templateFS embed.FS

//nolint:gochecknoglobals // parsed once at init
var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

//nolint:gochecknoglobals // badge text per file kind
var badges = map[entity.FileKind]string{
	entity.FileKindPDF:         "PDF",
	entity.FileKindSpreadsheet: "Excel",
	entity.FileKindImage:       "Image",
}

type TabLink struct {
	Key    entity.Kind
	Name   string
	Active bool
}

// PageResponse is the single HTML page.
type PageResponse struct {
	Tabs       []TabLink
	UploadOpen bool
	Upload     upload.Snapshot
	Badge      string
	Accept     string
	Uploading  bool
	CanSubmit  bool
	Refresh    bool
	Table      template.HTML
}

func newPage(view usecase.WorkspaceView) (PageResponse, error) {
	fragment, err := table.HTML(view.Table)
	if err != nil {
		return PageResponse{}, pkgerror.NewServer(err)
	}

	tabs := make([]TabLink, 0, len(table.Variants()))
	for _, v := range table.Variants() {
		tabs = append(tabs, TabLink{Key: v.Kind, Name: v.Title, Active: v.Kind == view.ActiveTab})
	}

	uploading := view.Upload.Uploading()

	return PageResponse{
		Tabs:       tabs,
		UploadOpen: view.UploadOpen,
		Upload:     view.Upload,
		Badge:      badges[view.Upload.FileKind],
		Accept:     entity.AcceptFilter,
		Uploading:  uploading,
		CanSubmit:  view.Upload.FileName != "" && !uploading,
		Refresh:    uploading,
		Table:      fragment,
	}, nil
}

func (PageResponse) ContentType() string {
	return "text/html; charset=utf-8"
}

func (p PageResponse) Render(w io.Writer) error {
	return pageTemplate.Execute(w, p)
}
