package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/extraction/outbound"
	"github.com/shandysiswandi/extractview/internal/extraction/shell"
	"github.com/shandysiswandi/extractview/internal/extraction/table"
	"github.com/shandysiswandi/extractview/internal/extraction/upload"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgconfig"
)

const endpointEnv = pkgconfig.EnvPrefix + "_EXTRACTION_ENDPOINT"

type options struct {
	endpoint string
	tab      string
	xlsx     string
}

func run(ctx context.Context, out io.Writer, path string, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	state := shell.New().OpenUpload()
	if opts.tab != "" {
		next, err := state.SelectTab(opts.tab)
		if err != nil {
			return fmt.Errorf("invalid --tab: %w", err)
		}
		state = next
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	endpoint := opts.endpoint
	if endpoint == "" {
		endpoint = os.Getenv(endpointEnv)
	}
	client, err := outbound.NewClient(outbound.Config{Endpoint: endpoint})
	if err != nil {
		return err
	}

	session := upload.NewSession()
	if err := session.SelectFile(entity.File{Name: filepath.Base(path), Data: data}); err != nil {
		return err
	}
	att, err := session.Begin(ctx, 1)
	if err != nil {
		return err
	}

	result, extractErr := client.Extract(att.Ctx, att.File)
	session.Complete(att.ID, result, extractErr)

	res, ok := session.TakeResult()
	if !ok {
		return errors.New(session.Snapshot().Error)
	}
	state = state.ApplyResult(res)

	variants := table.Variants()
	if opts.tab != "" {
		v, _ := table.For(state.ActiveTab)
		variants = []table.Variant{v}
	}
	for i, v := range variants {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if err := table.WriteText(out, v.Render(ctx, state.Records.Collection(v.Kind))); err != nil {
			return err
		}
	}

	if opts.xlsx != "" {
		return writeWorkbook(ctx, opts.xlsx, state.Records)
	}
	return nil
}

func writeWorkbook(ctx context.Context, path string, records entity.ExtractionResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return table.WriteWorkbook(ctx, f, records)
}
