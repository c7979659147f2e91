package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

// AuditContext returns middleware that enriches the audit actor set by Auth
// with session ID, client IP, and user agent. Requests without an actor pass
// through untouched. A missing X-Session-Id gets a generated one so audit
// rows from the same request still share a session.
func AuditContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actx, ok := ctxutil.AuditContextFromCtx(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		actx.SessionID = r.Header.Get("X-Session-Id")
		if actx.SessionID == "" {
			actx.SessionID = uuid.New().String()
		}
		actx.IPAddress = clientIP(r)
		actx.UserAgent = r.UserAgent()

		ctx := ctxutil.WithAuditContext(r.Context(), actx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
