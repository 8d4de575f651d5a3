package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/salesclean/internal/core"
	"github.com/JonMunkholm/salesclean/internal/logging"
	"github.com/JonMunkholm/salesclean/internal/metrics"
)

var errNoFile = errors.New("no file provided")

const defaultUploadName = "upload.csv"

// handleClean cleans an uploaded CSV and returns the result as a download.
//
// The upload is either the "file" field of a multipart form or the raw
// request body. The response carries X-Run-ID, X-Rows-In and X-Rows-Out.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Clean.MaxFileSize)

	src, name, err := uploadSource(r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	defer src.Close()

	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	metrics.CleaningsActive.Inc()
	defer func() {
		metrics.CleaningsActive.Dec()
		s.limiter.Release()
	}()

	outName := cleanedName(name)
	out := &bufferWriter{}
	cleaner := core.NewCleaner(readerLoader{r: src}, out, nil, core.Options{
		LegacyMissingText: s.cfg.Clean.LegacyMissingText,
	})

	res, err := cleaner.Run(r.Context(), name, outName)
	metrics.ObserveRun(res, err)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	s.archiveRun(r.Context(), res)

	h := w.Header()
	h.Set("Content-Type", "text/csv; charset=utf-8")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": outName}))
	h.Set("X-Run-ID", res.RunID)
	h.Set("X-Rows-In", strconv.Itoa(res.Stats.RowsIn))
	h.Set("X-Rows-Out", strconv.Itoa(res.Stats.RowsOut))
	_, _ = w.Write(out.buf.Bytes())
}

// archiveRun stores res when an archive is configured. Failures are logged;
// the cleaned file is still returned.
func (s *Server) archiveRun(ctx context.Context, res *core.Result) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Archive(ctx, res); err != nil {
		metrics.ArchiveErrors.Inc()
		logging.FromContext(logging.WithRunID(ctx, res.RunID)).Warn("archive failed", "error", err)
	}
}

// uploadSource returns the uploaded CSV and its file name.
func uploadSource(r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, defaultUploadName, nil
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", errNoFile
		}
		return nil, "", err
	}

	name := filepath.Base(header.Filename)
	if name == "." || name == "/" || name == "" {
		name = defaultUploadName
	}
	return file, name, nil
}

// cleanedName derives the download name: sales.csv becomes sales_clean.csv.
func cleanedName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_clean.csv"
}

// readerLoader loads a table from an already open reader.
type readerLoader struct {
	r io.Reader
}

func (l readerLoader) Load(ctx context.Context, path string) (*core.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := core.DecodeCSV(l.r)
	if err != nil {
		var pe *core.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// bufferWriter holds the encoded table until the response is written, so a
// failed run can still send an error status.
type bufferWriter struct {
	buf bytes.Buffer
}

func (b *bufferWriter) Write(ctx context.Context, path string, t *core.Table) error {
	if err := core.EncodeCSV(&b.buf, t); err != nil {
		return &core.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
