package render

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Bundle renders the three document formats concurrently and returns
// them as a single zip. Filenames inside the archive follow the same
// convention as individual downloads.
func Bundle(ctx context.Context, text string, tpl Template, name string) ([]byte, error) {
	var pdfBytes, docxBytes, txtBytes []byte

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pdfBytes, err = PDF(text, tpl)
		return err
	})
	g.Go(func() error {
		var err error
		docxBytes, err = DOCX(text)
		return err
	})
	g.Go(func() error {
		txtBytes = Text(text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rendering bundle: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range []struct {
		name string
		data []byte
	}{
		{Filename(name, "resume", ".pdf"), pdfBytes},
		{Filename(name, "resume", ".docx"), docxBytes},
		{Filename(name, "resume", ".txt"), txtBytes},
	} {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing bundle: %w", err)
	}
	return buf.Bytes(), nil
}
