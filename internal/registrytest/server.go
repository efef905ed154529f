// Package registrytest runs an in-memory source registry for tests.
package registrytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grundrisse/grundrisse/source"
	"github.com/samber/lo"
)

// Routes, as used by Fail, Hold and Hits.
const (
	ListRoute   = "GET /sources"
	CreateRoute = "POST /sources"
	DeleteRoute = "DELETE /sources/{id}"
	LoginRoute  = "POST /auth/login"
	MeRoute     = "GET /auth/me"
)

const (
	Username = "admin"
	Password = "admin123"
	Token    = "test-token"
)

// Server is a fake registry backend.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	sources []source.Source
	nextID  int
	fail    map[string]int
	reply   *reply
	holds   map[string][]*Hold
	pending []*Hold
	hits    map[string]int
	headers map[string]http.Header
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	s := &Server{
		nextID:  1,
		fail:    make(map[string]int),
		holds:   make(map[string][]*Hold),
		hits:    make(map[string]int),
		headers: make(map[string]http.Header),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/sources", s.route(ListRoute, true, s.list))
	r.Post("/sources", s.route(CreateRoute, true, s.create))
	r.Delete("/sources/{id}", s.route(DeleteRoute, true, s.delete))
	r.Post("/auth/login", s.route(LoginRoute, false, s.login))
	r.Get("/auth/me", s.route(MeRoute, true, s.me))

	s.Server = httptest.NewServer(r)
	t.Cleanup(func() {
		s.releaseAll()
		s.Close()
	})
	return s
}

// Seed replaces the stored sources.
func (s *Server) Seed(sources ...source.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources = append([]source.Source(nil), sources...)
	for _, src := range sources {
		s.nextID = max(s.nextID, src.ID+1)
	}
}

// Sources returns a copy of the stored sources.
func (s *Server) Sources() []source.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]source.Source(nil), s.sources...)
}

// Fail makes every request to route answer with code until Recover is called.
func (s *Server) Fail(route string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[route] = code
}

// Recover undoes Fail.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fail, route)
}

type reply struct {
	code int
	body []byte
}

// ReplyCreate makes successful creates answer with code and the raw body
// instead of the stored source. The source is still stored.
func (s *Server) ReplyCreate(code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply = &reply{code: code, body: []byte(body)}
}

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns how many requests reached any route.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Sum(lo.Values(s.hits))
}

// Header returns the headers of the last request to route.
func (s *Server) Header(route string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[route]
}

// Hold delays the response to the next request on route.
// The response is computed when the request arrives and delivered on Release.
func (s *Server) Hold(route string) *Hold {
	h := &Hold{
		arrived: make(chan struct{}),
		release: make(chan struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.holds[route] = append(s.holds[route], h)
	s.pending = append(s.pending, h)
	return h
}

func (s *Server) releaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.pending {
		h.Release()
	}
}

// Hold is a pending delayed response.
type Hold struct {
	arrived  chan struct{}
	release  chan struct{}
	released sync.Once
}

// Arrived is closed once the held request reaches the server.
func (h *Hold) Arrived() <-chan struct{} {
	return h.arrived
}

// Release lets the held response through.
func (h *Hold) Release() {
	h.released.Do(func() { close(h.release) })
}

func (s *Server) route(name string, authed bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[name]++
		s.headers[name] = r.Header.Clone()
		code, failing := s.fail[name]
		var hold *Hold
		if queue := s.holds[name]; len(queue) > 0 {
			hold, s.holds[name] = queue[0], queue[1:]
		}
		s.mu.Unlock()

		rec := httptest.NewRecorder()
		switch {
		case failing:
			respond(rec, code, map[string]string{"detail": http.StatusText(code)})
		case authed && r.Header.Get("Authorization") != "Bearer "+Token:
			respond(rec, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
		default:
			next(rec, r)
		}

		if hold != nil {
			close(hold.arrived)
			select {
			case <-hold.release:
			case <-r.Context().Done():
				return
			}
		}

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.Code)
		_, _ = w.Write(rec.Body.Bytes())
	}
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	sources := s.Sources()
	if sources == nil {
		sources = []source.Source{}
	}
	respond(w, http.StatusOK, sources)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var draft source.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	if err := draft.Validate(); err != nil {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	created := source.Source{
		ID:       s.nextID,
		Name:     draft.Name,
		Type:     draft.Type,
		URL:      draft.URL,
		IsActive: true,
	}
	s.nextID++
	s.sources = append(s.sources, created)
	custom := s.reply
	s.mu.Unlock()

	if custom != nil {
		w.WriteHeader(custom.code)
		_, _ = w.Write(custom.body)
		return
	}
	respond(w, http.StatusOK, created)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"detail": "Source not found"})
		return
	}

	s.mu.Lock()
	_, index, found := lo.FindIndexOf(s.sources, func(src source.Source) bool { return src.ID == id })
	if found {
		s.sources = append(s.sources[:index], s.sources[index+1:]...)
	}
	s.mu.Unlock()

	if !found {
		respond(w, http.StatusNotFound, map[string]string{"detail": "Source not found"})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Source deleted successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username != Username || creds.Password != Password {
		respond(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		return
	}
	respond(w, http.StatusOK, map[string]string{"access_token": Token, "token_type": "bearer"})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"username": Username})
}

func respond(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
