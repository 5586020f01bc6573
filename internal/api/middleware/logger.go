package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/util"
)

// LoggerConfig configures the request logger middleware.
type LoggerConfig struct {
	Skipper         middleware.Skipper
	Level           zerolog.Level
	LogRequestBody  bool
	LogResponseBody bool
}

var DefaultLoggerConfig = LoggerConfig{
	Skipper: middleware.DefaultSkipper,
	Level:   zerolog.DebugLevel,
}

// Logger attaches a request scoped zerolog logger (carrying the request id) to
// the request context and logs every request once it has been handled.
func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			l := log.With().Str("id", id).Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))
			req = c.Request()

			var reqBody []byte
			if config.LogRequestBody && req.Body != nil {
				var err error
				reqBody, err = io.ReadAll(req.Body)
				if err != nil {
					l.Error().Err(err).Msg("Failed to read request body")
					return echo.ErrBadRequest
				}
				req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
			}

			var resBody *bytes.Buffer
			if config.LogResponseBody {
				resBody = new(bytes.Buffer)
				res.Writer = &bodyDumpResponseWriter{Writer: io.MultiWriter(res.Writer, resBody), ResponseWriter: res.Writer}
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			ev := util.LogFromContext(req.Context()).WithLevel(config.Level)
			if res.Status >= http.StatusInternalServerError {
				ev = util.LogFromContext(req.Context()).Error()
			}

			ev = ev.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", elapsed)
			if err != nil {
				ev = ev.Err(err)
			}
			if config.LogRequestBody {
				ev = ev.Bytes("req_body", reqBody)
			}
			if resBody != nil {
				ev = ev.Bytes("res_body", resBody.Bytes())
			}
			ev.Msg("http_request")

			// handled by c.Error above
			return nil
		}
	}
}

type bodyDumpResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
