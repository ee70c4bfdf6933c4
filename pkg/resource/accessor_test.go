package resource

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetigu/ai-playground/pkg/api"
	"github.com/wetigu/ai-playground/pkg/reactive"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type itemQuery struct {
	Page int    `url:"page,omitempty"`
	Name string `url:"name,omitempty"`
}

type itemInput struct {
	Name string `json:"name"`
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

type reply struct {
	resp *api.Response
	err  error
	gate chan struct{}
}

// fakeTransport answers calls from a FIFO script.
type fakeTransport struct {
	mu     sync.Mutex
	calls  []call
	script []reply

	// seen is signalled after a call is recorded, before it blocks on its gate.
	seen chan struct{}
}

func (f *fakeTransport) push(r reply) *fakeTransport {
	f.mu.Lock()
	f.script = append(f.script, r)
	f.mu.Unlock()
	return f
}

func (f *fakeTransport) ok(t *testing.T, payload any) *fakeTransport {
	t.Helper()
	resp, err := api.NewResponse(payload)
	require.NoError(t, err)
	return f.push(reply{resp: resp})
}

func (f *fakeTransport) fail(err error) *fakeTransport {
	return f.push(reply{err: err})
}

func (f *fakeTransport) next(c call) (*api.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	var r reply
	if len(f.script) > 0 {
		r = f.script[0]
		f.script = f.script[1:]
	} else {
		r = reply{err: errors.New("fake: no scripted reply")}
	}
	f.mu.Unlock()

	if f.seen != nil {
		f.seen <- struct{}{}
	}
	if r.gate != nil {
		<-r.gate
	}
	return r.resp, r.err
}

func (f *fakeTransport) Get(_ context.Context, path string, query url.Values) (*api.Response, error) {
	return f.next(call{method: "GET", path: path, query: query})
}

func (f *fakeTransport) Post(_ context.Context, path string, body any) (*api.Response, error) {
	return f.next(call{method: "POST", path: path, body: body})
}

func (f *fakeTransport) Put(_ context.Context, path string, body any) (*api.Response, error) {
	return f.next(call{method: "PUT", path: path, body: body})
}

func (f *fakeTransport) Delete(_ context.Context, path string) error {
	_, err := f.next(call{method: "DELETE", path: path})
	return err
}

func (f *fakeTransport) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newItems(t *testing.T, tr api.Transport, opts ...Option) *Accessor[[]item, itemQuery, itemInput] {
	t.Helper()
	a, err := New[[]item, itemQuery, itemInput](tr, "/items", opts...)
	require.NoError(t, err)
	return a
}

func newItem(t *testing.T, tr api.Transport, opts ...Option) *Accessor[item, itemQuery, itemInput] {
	t.Helper()
	a, err := New[item, itemQuery, itemInput](tr, "/items", opts...)
	require.NoError(t, err)
	return a
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// transitions records every loading cell change.
func transitions(a interface{ Loading() reactive.ReadSignal[bool] }) func() []bool {
	var mu sync.Mutex
	var seen []bool
	a.Loading().Subscribe(func(v bool) {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
	})
	return func() []bool {
		mu.Lock()
		defer mu.Unlock()
		return append([]bool(nil), seen...)
	}
}

func TestNew(t *testing.T) {
	tr := &fakeTransport{}

	a, err := New[item, itemQuery, itemInput](tr, "/items/")
	require.NoError(t, err)
	assert.Equal(t, "/items", a.Path())
	assert.Equal(t, Idle, a.Status())
	assert.Nil(t, a.Data().Get())
	assert.NoError(t, a.Error())
	assert.False(t, a.IsLoading())

	_, err = New[item, itemQuery, itemInput](tr, "  ")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = New[item, itemQuery, itemInput](nil, "/items")
	assert.Error(t, err)

	assert.Panics(t, func() { MustNew[item, itemQuery, itemInput](tr, "") })
}

func TestFetchCollection_Success(t *testing.T) {
	tr := (&fakeTransport{}).ok(t, []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
	a := newItems(t, tr)
	loads := transitions(a)

	a.FetchCollection(context.Background())

	got, ok := a.Value()
	require.True(t, ok)
	assert.Len(t, got, 2)
	assert.NoError(t, a.Error())
	assert.False(t, a.IsLoading())
	assert.Equal(t, Success, a.Status())
	assert.Equal(t, []bool{true, false}, loads())

	c := tr.lastCall()
	assert.Equal(t, "GET", c.method)
	assert.Equal(t, "/items", c.path)
	assert.Empty(t, c.query)
}

func TestFetchCollectionWith_EncodesParams(t *testing.T) {
	tr := (&fakeTransport{}).ok(t, []item{})
	a := newItems(t, tr)

	a.FetchCollectionWith(context.Background(), itemQuery{Page: 2, Name: "x y"})

	c := tr.lastCall()
	assert.Equal(t, "2", c.query.Get("page"))
	assert.Equal(t, "x y", c.query.Get("name"))

	got, ok := a.Value()
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestFailureKeepsPriorData(t *testing.T) {
	boom := errors.New("network down")
	tr := (&fakeTransport{}).
		ok(t, []item{{ID: 1, Name: "a"}}).
		fail(boom)
	a := newItems(t, tr, WithLogger(quietLogger()))

	a.FetchCollection(context.Background())
	a.FetchCollection(context.Background())

	got, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, []item{{ID: 1, Name: "a"}}, got)
	assert.ErrorIs(t, a.Error(), boom)
	assert.False(t, a.IsLoading())
	assert.Equal(t, Failure, a.Status())
}

func TestEntryClearsError(t *testing.T) {
	gate := make(chan struct{})
	tr := &fakeTransport{seen: make(chan struct{}, 2)}
	tr.fail(errors.New("first"))
	resp, err := api.NewResponse(item{ID: 3})
	require.NoError(t, err)
	tr.push(reply{resp: resp, gate: gate})

	a := newItem(t, tr, WithLogger(quietLogger()))
	a.FetchOne(context.Background(), 3)
	<-tr.seen
	require.Error(t, a.Error())

	done := make(chan struct{})
	go func() {
		a.FetchOne(context.Background(), 3)
		close(done)
	}()
	<-tr.seen

	assert.True(t, a.IsLoading())
	assert.NoError(t, a.Error())
	assert.Equal(t, Loading, a.Status())

	close(gate)
	<-done
	assert.False(t, a.IsLoading())
	got, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, 3, got.ID)
}

func TestCreate(t *testing.T) {
	tr := (&fakeTransport{}).ok(t, item{ID: 7, Name: "new"})
	a := newItem(t, tr)

	got, ok := a.Create(context.Background(), itemInput{Name: "new"})
	require.True(t, ok)
	assert.Equal(t, item{ID: 7, Name: "new"}, got)

	stored, _ := a.Value()
	assert.Equal(t, got, stored)

	c := tr.lastCall()
	assert.Equal(t, "POST", c.method)
	assert.Equal(t, "/items", c.path)
	assert.Equal(t, itemInput{Name: "new"}, c.body)
}

func TestCreate_Failure(t *testing.T) {
	rejected := &api.RejectedError{Method: "POST", Path: "/items", Message: "name taken"}
	tr := (&fakeTransport{}).fail(rejected)
	a := newItem(t, tr, WithLogger(quietLogger()))

	got, ok := a.Create(context.Background(), itemInput{Name: "dup"})
	assert.False(t, ok)
	assert.Zero(t, got)
	assert.Nil(t, a.Data().Get())
	assert.Equal(t, rejected, a.Error())
}

func TestUpdate(t *testing.T) {
	tr := (&fakeTransport{}).ok(t, item{ID: 7, Name: "renamed"})
	a := newItem(t, tr)

	got, ok := a.Update(context.Background(), 7, itemInput{Name: "renamed"})
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Name)

	c := tr.lastCall()
	assert.Equal(t, "PUT", c.method)
	assert.Equal(t, "/items/7", c.path)
}

func TestUpdate_InvalidID(t *testing.T) {
	tr := &fakeTransport{}
	a := newItem(t, tr, WithLogger(quietLogger()))

	_, ok := a.Update(context.Background(), 1.5, itemInput{})
	assert.False(t, ok)
	assert.Error(t, a.Error())
	assert.False(t, a.IsLoading())
	assert.Empty(t, tr.calls)
}

func TestRemove_LeavesData(t *testing.T) {
	tr := (&fakeTransport{}).
		ok(t, item{ID: 1, Name: "keep"}).
		push(reply{})
	a := newItem(t, tr)

	a.FetchOne(context.Background(), 1)
	before := a.Data().Get()

	assert.True(t, a.Remove(context.Background(), 1))
	assert.Same(t, before, a.Data().Get())
	assert.NoError(t, a.Error())
	assert.False(t, a.IsLoading())
	assert.Equal(t, "/items/1", tr.lastCall().path)
}

func TestRemove_Failure(t *testing.T) {
	notFound := &api.StatusError{Method: "DELETE", Path: "/items/9", StatusCode: 404, Message: "not found"}
	tr := (&fakeTransport{}).fail(notFound)
	a := newItem(t, tr, WithLogger(quietLogger()))

	assert.False(t, a.Remove(context.Background(), "9"))
	assert.True(t, api.IsNotFound(a.Error()))
	assert.Nil(t, a.Data().Get())
	assert.False(t, a.IsLoading())
}

func TestDecodeFailure(t *testing.T) {
	tr := (&fakeTransport{}).push(reply{resp: &api.Response{Success: true, Data: []byte(`"not an object"`)}})
	a := newItem(t, tr, WithLogger(quietLogger()))

	a.FetchOne(context.Background(), 1)

	var decodeErr *api.DecodeError
	assert.ErrorAs(t, a.Error(), &decodeErr)
	assert.Nil(t, a.Data().Get())
}

func TestFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr := (&fakeTransport{}).fail(&api.StatusError{Method: "GET", Path: "/items", StatusCode: 500, Message: "boom"})
	a := newItems(t, tr, WithLogger(logger))

	a.FetchCollection(context.Background())

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `msg="api error"`)
	assert.Contains(t, out, "op=fetch")
	assert.Contains(t, out, "kind=status")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("api error")))
}

func TestCallbacks(t *testing.T) {
	var successes []any
	var failures []error
	boom := errors.New("boom")
	tr := (&fakeTransport{}).ok(t, item{ID: 1}).fail(boom).push(reply{})
	a := newItem(t, tr,
		WithLogger(quietLogger()),
		WithOnSuccess(func(v any) { successes = append(successes, v) }),
		WithOnError(func(err error) { failures = append(failures, err) }),
	)

	a.FetchOne(context.Background(), 1)
	a.FetchOne(context.Background(), 2)
	a.Remove(context.Background(), 1)

	assert.Equal(t, []any{item{ID: 1}}, successes)
	assert.Equal(t, []error{boom}, failures)
}

func TestLoadingAndErrorNeverBothSet(t *testing.T) {
	tr := (&fakeTransport{}).fail(errors.New("x")).ok(t, item{ID: 1}).fail(errors.New("y"))
	a := newItem(t, tr, WithLogger(quietLogger()))

	var violations int
	eff := reactive.CreateEffect(func() reactive.Cleanup {
		if a.Loading().Get() && a.Err().Get() != nil {
			violations++
		}
		return nil
	})
	defer eff.Dispose()

	for i := 0; i < 3; i++ {
		a.FetchOne(context.Background(), 1)
	}
	assert.Zero(t, violations)
}

type (
	sku     string
	orderNo uint16
)

func TestFormatID(t *testing.T) {
	tests := []struct {
		name    string
		id      any
		want    string
		wantErr bool
	}{
		{"int", 42, "42", false},
		{"int64", int64(-3), "-3", false},
		{"uint32", uint32(9), "9", false},
		{"int8", int8(-8), "-8", false},
		{"int16", int16(300), "300", false},
		{"uint8", uint8(255), "255", false},
		{"uint16", uint16(65535), "65535", false},
		{"named string", sku("AB-1"), "AB-1", false},
		{"named int", orderNo(77), "77", false},
		{"empty named string", sku(""), "", true},
		{"string", "abc", "abc", false},
		{"empty string", "", "", true},
		{"float", 1.5, "", true},
		{"nil", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemPathEscapes(t *testing.T) {
	tr := (&fakeTransport{}).ok(t, item{})
	a := newItem(t, tr)

	a.FetchOne(context.Background(), "a/b c")
	assert.Equal(t, "/items/a%2Fb%20c", tr.lastCall().path)
}

func TestNullPayloadLeavesDataAbsent(t *testing.T) {
	tr := (&fakeTransport{}).
		ok(t, item{ID: 1, Name: "old"}).
		push(reply{resp: &api.Response{Success: true, Data: []byte("null")}}).
		ok(t, item{ID: 2}).
		push(reply{resp: &api.Response{Success: true}})
	var successes int
	a := newItem(t, tr, WithOnSuccess(func(any) { successes++ }))

	a.FetchOne(context.Background(), 1)
	require.NotNil(t, a.Data().Get())

	got, ok := a.Create(context.Background(), itemInput{Name: "x"})
	assert.False(t, ok)
	assert.Zero(t, got)
	assert.Nil(t, a.Data().Get())
	_, present := a.Value()
	assert.False(t, present)
	assert.NoError(t, a.Error())
	assert.False(t, a.IsLoading())
	assert.Equal(t, Success, a.Status())

	a.FetchOne(context.Background(), 2)
	require.NotNil(t, a.Data().Get())

	_, ok = a.Update(context.Background(), 2, itemInput{})
	assert.False(t, ok)
	assert.Nil(t, a.Data().Get())
	assert.NoError(t, a.Error())

	assert.Equal(t, 2, successes)
}
