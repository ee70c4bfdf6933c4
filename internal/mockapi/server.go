package mockapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wetigu/ai-playground/pkg/api"
	"github.com/wetigu/ai-playground/pkg/model"
)

// Server is the in-memory backend.
type Server struct {
	products *collection[model.Product]
	orders   *collection[model.Order]
	users    *collection[model.User]

	token  string
	now    func() time.Time
	logger *slog.Logger

	faultMu sync.Mutex
	faults  []fault
}

type fault struct {
	status  int
	message string
}

// Option configures a Server.
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSeed fills the store with a small demo catalog.
func WithSeed() Option {
	return func(s *Server) {
		s.seed()
	}
}

// New creates an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		products: newCollection[model.Product](),
		orders:   newCollection[model.Order](),
		users:    newCollection[model.User](),
		now:      time.Now,
		logger:   slog.Default().With("component", "mockapi"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FailNext makes the next request fail with status and message, before any
// routing happens. Calls queue up in order.
func (s *Server) FailNext(status int, message string) {
	s.faultMu.Lock()
	s.faults = append(s.faults, fault{status: status, message: message})
	s.faultMu.Unlock()
}

func (s *Server) popFault() (fault, bool) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	if len(s.faults) == 0 {
		return fault{}, false
	}
	f := s.faults[0]
	s.faults = s.faults[1:]
	return f, true
}

// Counts returns the number of stored products, orders and users.
func (s *Server) Counts() (products, orders, users int) {
	return s.products.len(), s.orders.len(), s.users.len()
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)
	r.Use(s.injectFaults)
	if s.token != "" {
		r.Use(s.requireToken)
	}

	mount(r, "/products", s, s.products, productHandlers(s))
	mount(r, "/orders", s, s.orders, orderHandlers(s))
	mount(r, "/users", s, s.users, userHandlers(s))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get(api.RequestIDHeader),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, ok := s.popFault(); ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handlers describes how one collection is created, updated, validated and
// filtered.
type handlers[T, W any] struct {
	create   func(id int64, in W, now time.Time) T
	apply    func(v *T, in W, now time.Time)
	validate func(in W, creating bool) error
	filter   func(q map[string][]string) (func(T) bool, error)
}

func mount[T, W any](r chi.Router, pattern string, s *Server, store *collection[T], h handlers[T, W]) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			page, perPage, err := pagination(q)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			var keep func(T) bool
			if h.filter != nil {
				if keep, err = h.filter(q); err != nil {
					writeError(w, http.StatusUnprocessableEntity, err.Error())
					return
				}
			}
			writeData(w, http.StatusOK, model.NewPage(store.list(keep), page, perPage))
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			in, ok := decodeBody[W](w, r)
			if !ok {
				return
			}
			if err := h.validate(in, true); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			now := s.now()
			created := store.insert(func(id int64) T { return h.create(id, in, now) })
			writeData(w, http.StatusCreated, created)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			v, found := store.get(id)
			if !found {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			writeData(w, http.StatusOK, v)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			in, ok := decodeBody[W](w, r)
			if !ok {
				return
			}
			if err := h.validate(in, false); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			now := s.now()
			updated, found := store.update(id, func(v *T) { h.apply(v, in, now) })
			if !found {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			writeData(w, http.StatusOK, updated)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			if !store.remove(id) {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			writeJSON(w, http.StatusOK, api.Envelope[any]{Success: true, Message: "deleted"})
		})
	})
}

func pagination(q map[string][]string) (page, perPage int, err error) {
	page, perPage = 1, model.DefaultPageSize
	if v := first(q, "page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
	}
	if v := first(q, "per_page"); v != "" {
		if perPage, err = strconv.Atoi(v); err != nil || perPage < 1 || perPage > model.MaxPageSize {
			return 0, 0, errors.New("per_page must be between 1 and 100")
		}
	}
	return page, perPage, nil
}

func first(q map[string][]string, key string) string {
	if vs := q[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusUnprocessableEntity, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeBody[W any](w http.ResponseWriter, r *http.Request) (W, bool) {
	var in W
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return in, false
	}
	return in, true
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, api.Envelope[any]{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Envelope[any]{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
