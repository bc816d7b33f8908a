package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// GzipRequestMiddleware transparently decompresses gzip-encoded request
// bodies. A body that does not decode as gzip is rejected with 400.
func GzipRequestMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !requestIsGzipped(req.Header) {
				return next(c)
			}
			raw := req.Body
			gr, err := gzip.NewReader(raw)
			if err != nil {
				_ = raw.Close()
				return echo.NewHTTPError(http.StatusBadRequest, "invalid gzip body")
			}
			req.Body = gzipBody{gr: gr, raw: raw}
			req.ContentLength = -1
			req.Header.Del(echo.HeaderContentEncoding)
			req.Header.Del(echo.HeaderContentLength)
			return next(c)
		}
	}
}

func requestIsGzipped(h http.Header) bool {
	for _, enc := range strings.Split(h.Get(echo.HeaderContentEncoding), ",") {
		if strings.EqualFold(strings.TrimSpace(enc), "gzip") {
			return true
		}
	}
	return false
}

type gzipBody struct {
	gr  *gzip.Reader
	raw io.Closer
}

func (b gzipBody) Read(p []byte) (int, error) { return b.gr.Read(p) }

func (b gzipBody) Close() error {
	err := b.gr.Close()
	if cerr := b.raw.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
