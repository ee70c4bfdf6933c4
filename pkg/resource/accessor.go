package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/wetigu/ai-playground/pkg/api"
	"github.com/wetigu/ai-playground/pkg/reactive"
)

// ErrEmptyPath is returned by New when the resource path is empty.
var ErrEmptyPath = errors.New("resource: path must not be empty")

// Accessor wraps CRUD calls against one resource path.
//
// T is the payload shape stored in the data cell, P the query parameter type
// of collection reads and W the write payload type of Create and Update.
type Accessor[T, P, W any] struct {
	transport api.Transport
	path      string
	logger    *slog.Logger

	onSuccess func(T)
	onError   func(error)

	data    *reactive.Signal[*T]
	err     *reactive.Signal[error]
	loading *reactive.Signal[bool]

	// outcome records the status of the last completed operation.
	outcome *reactive.Signal[Status]
}

// New creates an accessor for path. A trailing slash is trimmed.
func New[T, P, W any](transport api.Transport, path string, opts ...Option) (*Accessor[T, P, W], error) {
	if transport == nil {
		return nil, errors.New("resource: transport must not be nil")
	}
	path = strings.TrimRight(strings.TrimSpace(path), "/")
	if path == "" {
		return nil, ErrEmptyPath
	}

	cfg := options{logger: slog.Default().With("component", "resource")}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Accessor[T, P, W]{
		transport: transport,
		path:      path,
		logger:    cfg.logger.With("path", path),
		data:      reactive.NewSignal[*T](nil),
		err:       reactive.NewSignal[error](nil),
		loading:   reactive.NewSignal(false),
		outcome:   reactive.NewSignal(Idle),
	}
	if cfg.onSuccess != nil {
		a.onSuccess = func(v T) { cfg.onSuccess(v) }
	}
	a.onError = cfg.onError
	return a, nil
}

// MustNew is like New but panics on invalid arguments.
func MustNew[T, P, W any](transport api.Transport, path string, opts ...Option) *Accessor[T, P, W] {
	a, err := New[T, P, W](transport, path, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Path returns the base resource path.
func (a *Accessor[T, P, W]) Path() string {
	return a.path
}

// Data returns the data cell. nil means no payload has been received.
func (a *Accessor[T, P, W]) Data() reactive.ReadSignal[*T] {
	return a.data
}

// Err returns the error cell.
func (a *Accessor[T, P, W]) Err() reactive.ReadSignal[error] {
	return a.err
}

// Loading returns the loading cell.
func (a *Accessor[T, P, W]) Loading() reactive.ReadSignal[bool] {
	return a.loading
}

// Value returns the current payload and whether one is present.
func (a *Accessor[T, P, W]) Value() (T, bool) {
	if p := a.data.Get(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Error returns the error of the last operation, or nil.
func (a *Accessor[T, P, W]) Error() error {
	return a.err.Get()
}

// IsLoading reports whether an operation is outstanding.
func (a *Accessor[T, P, W]) IsLoading() bool {
	return a.loading.Get()
}

// Status collapses the cells into one state.
func (a *Accessor[T, P, W]) Status() Status {
	if a.loading.Get() {
		return Loading
	}
	return a.outcome.Get()
}

// FetchCollection reads the base path without query parameters and stores
// the payload in the data cell.
func (a *Accessor[T, P, W]) FetchCollection(ctx context.Context) {
	a.fetch(ctx, "fetch", a.path, nil)
}

// FetchCollectionWith reads the base path with params encoded as the query.
func (a *Accessor[T, P, W]) FetchCollectionWith(ctx context.Context, params P) {
	a.begin()

	query, err := api.EncodeQuery(params)
	if err != nil {
		a.fail("fetch", a.path, err)
		return
	}
	a.read(ctx, "fetch", a.path, query)
}

// FetchOne reads path/id and stores the payload in the data cell.
func (a *Accessor[T, P, W]) FetchOne(ctx context.Context, id any) {
	p, err := a.itemPath(id)
	if err != nil {
		a.begin()
		a.fail("fetch_one", a.path, err)
		return
	}
	a.fetch(ctx, "fetch_one", p, nil)
}

// Create posts payload to the base path. On success the created payload is
// stored and returned. It returns (zero, false) on failure, and also when the
// response carries no payload; the error cell then stays nil and the data
// cell becomes absent.
func (a *Accessor[T, P, W]) Create(ctx context.Context, payload W) (T, bool) {
	a.begin()

	resp, err := a.transport.Post(ctx, a.path, payload)
	return a.write("create", a.path, resp, err)
}

// Update puts payload to path/id. It follows the Create contract for
// failures and empty responses.
func (a *Accessor[T, P, W]) Update(ctx context.Context, id any, payload W) (T, bool) {
	a.begin()

	p, err := a.itemPath(id)
	if err != nil {
		var zero T
		a.fail("update", a.path, err)
		return zero, false
	}

	resp, err := a.transport.Put(ctx, p, payload)
	return a.write("update", p, resp, err)
}

// Remove deletes path/id. It reports success and never touches the data cell.
func (a *Accessor[T, P, W]) Remove(ctx context.Context, id any) bool {
	a.begin()

	p, err := a.itemPath(id)
	if err != nil {
		a.fail("remove", a.path, err)
		return false
	}

	if err := a.transport.Delete(ctx, p); err != nil {
		a.fail("remove", p, err)
		return false
	}

	reactive.Batch(func() {
		a.loading.Set(false)
		a.outcome.Set(Success)
	})
	return true
}

func (a *Accessor[T, P, W]) fetch(ctx context.Context, op, path string, query url.Values) {
	a.begin()
	a.read(ctx, op, path, query)
}

func (a *Accessor[T, P, W]) read(ctx context.Context, op, path string, query url.Values) {
	resp, err := a.transport.Get(ctx, path, query)
	a.write(op, path, resp, err)
}

// write unwraps a transport result into the cells.
func (a *Accessor[T, P, W]) write(op, path string, resp *api.Response, err error) (T, bool) {
	var zero T
	if err != nil {
		a.fail(op, path, err)
		return zero, false
	}

	value, ok, err := api.Decode[T](resp)
	if err != nil {
		a.fail(op, path, err)
		return zero, false
	}
	if !ok {
		a.succeedEmpty()
		return zero, false
	}

	a.succeed(value)
	return value, true
}

// begin enters the Loading state.
func (a *Accessor[T, P, W]) begin() {
	reactive.Batch(func() {
		a.loading.Set(true)
		a.err.Set(nil)
	})
}

func (a *Accessor[T, P, W]) succeed(value T) {
	stored := value
	reactive.Batch(func() {
		a.data.Set(&stored)
		a.loading.Set(false)
		a.outcome.Set(Success)
	})
	if a.onSuccess != nil {
		a.onSuccess(value)
	}
}

// succeedEmpty records a successful response without a payload. The data
// cell becomes absent.
func (a *Accessor[T, P, W]) succeedEmpty() {
	reactive.Batch(func() {
		a.data.Set(nil)
		a.loading.Set(false)
		a.outcome.Set(Success)
	})
}

// fail records err; the data cell keeps its previous value.
func (a *Accessor[T, P, W]) fail(op, path string, err error) {
	a.logger.Error("api error",
		"op", op,
		"target", path,
		"kind", api.Kind(err),
		"error", err,
	)
	reactive.Batch(func() {
		a.err.Set(err)
		a.loading.Set(false)
		a.outcome.Set(Failure)
	})
	if a.onError != nil {
		a.onError(err)
	}
}

func (a *Accessor[T, P, W]) itemPath(id any) (string, error) {
	s, err := FormatID(id)
	if err != nil {
		return "", err
	}
	return a.path + "/" + url.PathEscape(s), nil
}

// FormatID renders an entity identifier for use in a path. Strings must be
// non-empty; integers of any width are accepted, including named string and
// integer types.
func FormatID(id any) (string, error) {
	switch v := id.(type) {
	case string:
		if v == "" {
			return "", errors.New("resource: id must not be empty")
		}
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case fmt.Stringer:
		return FormatID(v.String())
	case nil:
		return "", errors.New("resource: id must not be nil")
	}

	rv := reflect.ValueOf(id)
	switch rv.Kind() {
	case reflect.String:
		return FormatID(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	default:
		return "", fmt.Errorf("resource: unsupported id type %T", id)
	}
}
