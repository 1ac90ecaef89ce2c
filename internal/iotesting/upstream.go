package iotesting

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gnames/gnfmt"
	"github.com/gnames/pokedb/pkg/pokeapi"
)

const apiPrefix = "/api/v2/"

type resource struct {
	id     int
	name   string
	detail any
}

// Upstream is a mock of a PokeAPI-compatible service. Collection
// endpoints list resources in the order they were added, detail
// endpoints serve the registered records.
type Upstream struct {
	server *httptest.Server
	enc    gnfmt.GNjson

	mu        sync.Mutex
	resources map[string][]resource
	failures  map[string]int
	requests  map[string]int
}

// NewUpstream starts a mock upstream that is closed with the test.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{
		resources: make(map[string][]resource),
		failures:  make(map[string]int),
		requests:  make(map[string]int),
	}
	u.server = httptest.NewServer(http.HandlerFunc(u.handle))
	t.Cleanup(u.server.Close)
	return u
}

// BaseURL is the API root to put into config.Import.BaseURL.
func (u *Upstream) BaseURL() string {
	return u.server.URL + strings.TrimSuffix(apiPrefix, "/")
}

// ResourceURL returns the canonical detail URL of a resource.
func (u *Upstream) ResourceURL(endpoint string, id int) string {
	return fmt.Sprintf("%s%s%s/%d/", u.server.URL, apiPrefix, endpoint, id)
}

// Add registers a resource of a collection endpoint.
func (u *Upstream) Add(endpoint string, id int, name string, detail any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.resources[endpoint] = append(u.resources[endpoint],
		resource{id: id, name: name, detail: detail})
}

// Replace swaps the detail record of an already registered resource.
func (u *Upstream) Replace(endpoint string, id int, detail any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i, r := range u.resources[endpoint] {
		if r.id == id {
			u.resources[endpoint][i].detail = detail
		}
	}
}

// Fail makes the detail endpoint of a resource answer with status.
func (u *Upstream) Fail(endpoint string, id int, status int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failures[detailPath(endpoint, id)] = status
}

// FailList makes the collection endpoint answer with status.
func (u *Upstream) FailList(endpoint string, status int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failures[endpoint] = status
}

// Requests returns how many times a path (for example "type" or
// "type/10") was requested.
func (u *Upstream) Requests(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.requests[path]
}

func detailPath(endpoint string, id int) string {
	return endpoint + "/" + strconv.Itoa(id)
}

func (u *Upstream) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, apiPrefix)
	path = strings.Trim(path, "/")

	u.mu.Lock()
	u.requests[path]++
	status, failed := u.failures[path]
	u.mu.Unlock()

	if failed {
		http.Error(w, http.StatusText(status), status)
		return
	}

	endpoint, idStr, isDetail := strings.Cut(path, "/")
	if !isDetail {
		u.list(w, r, endpoint)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	u.detail(w, r, endpoint, id)
}

func (u *Upstream) list(w http.ResponseWriter, r *http.Request, endpoint string) {
	q := r.URL.Query()
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(q.Get("offset"))

	u.mu.Lock()
	all := u.resources[endpoint]
	u.mu.Unlock()

	page := pokeapi.Page{Count: len(all), Results: []pokeapi.NamedResource{}}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		page.Results = append(page.Results, pokeapi.NamedResource{
			Name: all[i].name,
			URL:  u.ResourceURL(endpoint, all[i].id),
		})
	}
	if offset+limit < len(all) {
		next := fmt.Sprintf("%s/%s?limit=%d&offset=%d",
			u.BaseURL(), endpoint, limit, offset+limit)
		page.Next = &next
	}
	u.write(w, page)
}

func (u *Upstream) detail(w http.ResponseWriter, r *http.Request, endpoint string, id int) {
	u.mu.Lock()
	var detail any
	for _, res := range u.resources[endpoint] {
		if res.id == id {
			detail = res.detail
		}
	}
	u.mu.Unlock()

	if detail == nil {
		http.NotFound(w, r)
		return
	}
	u.write(w, detail)
}

func (u *Upstream) write(w http.ResponseWriter, v any) {
	bs, err := u.enc.Encode(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(bs)
}

// Ref builds a named reference with a canonical upstream URL.
func Ref(endpoint string, id int, name string) pokeapi.NamedResource {
	return pokeapi.NamedResource{
		Name: name,
		URL:  fmt.Sprintf("https://pokeapi.co/api/v2/%s/%d/", endpoint, id),
	}
}

// RefPtr is Ref that returns a pointer.
func RefPtr(endpoint string, id int, name string) *pokeapi.NamedResource {
	res := Ref(endpoint, id, name)
	return &res
}
