package httpapi

import (
	"net/http"

	"github.com/valyala/bytebufferpool"

	"github.com/futstats/team-manager/internal/platform/cache"
)

// cachedResponse is what a response-cache hit replays: status, content type
// and the rendered body.
type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// bodyRecorder tees the handler's output into a pooled buffer so a 200 can
// be stored after it has been sent.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    *bytebufferpool.ByteBuffer
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *bodyRecorder) Write(p []byte) (int, error) {
	_, _ = r.buf.Write(p)
	return r.ResponseWriter.Write(p)
}

// CachedGET replays stored responses for GET requests keyed by team and
// request URI. Only 200 responses are stored; everything else passes through
// untouched. The handler chain registers this per route, after the mux has
// resolved path values.
func CachedGET(store *cache.Store, next http.Handler) http.Handler {
	if store == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		teamID := r.PathValue("teamID")
		if teamID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := cache.ResponseKey(teamID, r.URL.RequestURI()).String()
		if hit, ok := store.Get(ctx, key); ok {
			if cached, ok := hit.(cachedResponse); ok {
				w.Header().Set("Content-Type", cached.ContentType)
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(cached.Status)
				_, _ = w.Write(cached.Body)
				return
			}
		}

		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		recorder := &bodyRecorder{ResponseWriter: w, status: http.StatusOK, buf: buf}
		next.ServeHTTP(recorder, r)

		if recorder.status != http.StatusOK {
			return
		}

		body := make([]byte, buf.Len())
		copy(body, buf.Bytes())
		store.Set(ctx, key, cachedResponse{
			Status:      recorder.status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        body,
		})
	})
}
