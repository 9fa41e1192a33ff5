package middleware

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code.
// Hijack пробрасывается к исходному writer: websocket upgrade забирает
// соединение целиком, и без этого relay работать не будет.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
	hijacked   bool
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the number of bytes written
func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack делегирует захват соединения исходному writer
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	rw.hijacked = true
	rw.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// LoggingMiddleware создает middleware для логирования HTTP запросов.
// Логирует метод, путь, статус, время выполнения, размер ответа.
// НЕ логирует sensitive данные: токен из query string маскируется.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK, // default status
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			// Определяем уровень логирования на основе статуса
			logLevel := slog.LevelInfo
			if wrapped.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if wrapped.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			logger.Log(r.Context(), logLevel, "HTTP request",
				"method", r.Method,
				"url", sanitizeURL(r.URL),
				"remote_addr", r.RemoteAddr,
				"status", wrapped.statusCode,
				"hijacked", wrapped.hijacked,
				"duration_ms", duration.Milliseconds(),
				"bytes_written", wrapped.written,
			)
		})
	}
}

// sanitizeURL маскирует bearer токен из query string подключения
func sanitizeURL(u *url.URL) string {
	q := u.Query()
	if q.Get("token") != "" {
		q.Set("token", "***")
	}
	sanitized := *u
	sanitized.RawQuery = q.Encode()
	return sanitized.String()
}
