package httpx

import (
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// CompressionConfig holds configuration for the compression middleware.
type CompressionConfig struct {
	Level   int // gzip level 1-9; 0 selects the default
	MinSize int // responses shorter than this are sent uncompressed
	Logger  *slog.Logger
}

//nolint:gochecknoglobals // static read-only lookup
var compressibleTypes = map[string]bool{
	"application/json": true,
	"text/plain":       true,
	"text/html":        true,
	"text/css":         true,
}

// Compression returns a middleware that gzips JSON and text responses for
// clients that accept it. Bodies are buffered until MinSize bytes so short
// answers go out as-is.
func Compression(cfg CompressionConfig) Middleware {
	level := cfg.Level
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	pool := &sync.Pool{New: func() any {
		w, err := gzip.NewWriterLevel(io.Discard, level)
		if err != nil {
			return gzip.NewWriter(io.Discard)
		}
		return w
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")

			gzw := &gzipResponseWriter{ResponseWriter: w, pool: pool, minSize: cfg.MinSize}
			next.ServeHTTP(gzw, r)
			if err := gzw.finish(); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "closing gzip writer failed", "error", err)
			}
		})
	}
}

// acceptsGzip checks if the client accepts gzip encoding, respecting q=0.
func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "gzip") {
			continue
		}
		q := strings.ReplaceAll(strings.TrimSpace(params), " ", "")
		return q != "q=0" && q != "q=0.0" && q != "q=0.00" && q != "q=0.000"
	}
	return false
}

func isCompressibleContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return compressibleTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

type gzipMode int

const (
	modeUndecided gzipMode = iota
	modePassthrough
	modeBuffering
	modeCompressing
)

// gzipResponseWriter defers the compression decision until the status,
// content type and body size are known.
type gzipResponseWriter struct {
	http.ResponseWriter
	pool    *sync.Pool
	gz      *gzip.Writer
	minSize int
	status  int
	mode    gzipMode
	buf     []byte
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.mode != modeUndecided {
		return
	}
	w.status = status
	h := w.Header()
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified ||
		h.Get("Content-Encoding") != "" || !isCompressibleContentType(h.Get("Content-Type")) {
		w.mode = modePassthrough
		w.ResponseWriter.WriteHeader(status)
		return
	}
	w.mode = modeBuffering
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.mode == modeUndecided {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	switch w.mode {
	case modeBuffering:
		w.buf = append(w.buf, b...)
		if len(w.buf) >= w.minSize {
			if err := w.startGzip(); err != nil {
				return 0, err
			}
		}
		return len(b), nil
	case modeCompressing:
		return w.gz.Write(b)
	default:
		return w.ResponseWriter.Write(b)
	}
}

func (w *gzipResponseWriter) startGzip() error {
	h := w.Header()
	h.Set("Content-Encoding", "gzip")
	h.Del("Content-Length")
	w.ResponseWriter.WriteHeader(w.status)

	gz, ok := w.pool.Get().(*gzip.Writer)
	if !ok {
		gz = gzip.NewWriter(io.Discard)
	}
	gz.Reset(w.ResponseWriter)
	w.gz = gz
	w.mode = modeCompressing

	buf := w.buf
	w.buf = nil
	_, err := gz.Write(buf)
	return err
}

// finish flushes a short buffered body uncompressed or closes the gzip stream.
func (w *gzipResponseWriter) finish() error {
	switch w.mode {
	case modeBuffering:
		w.ResponseWriter.WriteHeader(w.status)
		_, err := w.ResponseWriter.Write(w.buf)
		w.buf = nil
		return err
	case modeCompressing:
		err := w.gz.Close()
		w.gz.Reset(io.Discard)
		w.pool.Put(w.gz)
		w.gz = nil
		return err
	default:
		return nil
	}
}

// Flush implements http.Flusher for streaming support.
func (w *gzipResponseWriter) Flush() {
	if w.mode == modeBuffering {
		if err := w.startGzip(); err != nil {
			return
		}
	}
	if w.gz != nil {
		if err := w.gz.Flush(); err != nil {
			return
		}
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *gzipResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
