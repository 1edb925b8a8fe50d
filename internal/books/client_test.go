package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"booksearch/internal/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default().Books
	cfg.Endpoint = srv.URL + "/books/v1/volumes"
	return New(cfg, logrus.New()), &hits
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_, _ = w.Write([]byte(body))
}

func TestVolumes(t *testing.T) {
	var gotQ, gotMax, gotRaw, gotAccept string
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		gotRaw = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		writeJSON(w, `{"kind":"books#volumes","totalItems":1,"items":[{"id":"x1","volumeInfo":{"title":"Dune","authors":["Frank Herbert"],"imageLinks":{"thumbnail":"u1"}}}]}`)
	})

	res, err := c.Volumes(context.Background(), "Dune & Arrakis")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "exactly one request")
	assert.Equal(t, "Dune & Arrakis", gotQ)
	assert.Equal(t, "20", gotMax)
	assert.Equal(t, "q=Dune%20%26%20Arrakis&maxResults=20", gotRaw)
	assert.Equal(t, "application/json", gotAccept)

	require.Len(t, res.Items, 1)
	info := res.Items[0].VolumeInfo
	title, ok := info.TitleText()
	assert.True(t, ok)
	assert.Equal(t, "Dune", title)
	assert.Equal(t, []string{"Frank Herbert"}, info.Authors)
	thumb, ok := info.ThumbnailURL()
	assert.True(t, ok)
	assert.Equal(t, "u1", thumb)
}

func TestVolumesOptionalFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"items":[{"volumeInfo":{}},{"volumeInfo":{"title":"","imageLinks":{}}}]}`)
	})

	res, err := c.Volumes(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	for _, it := range res.Items {
		_, ok := it.VolumeInfo.TitleText()
		assert.False(t, ok)
		_, ok = it.VolumeInfo.ThumbnailURL()
		assert.False(t, ok)
		assert.Nil(t, it.VolumeInfo.Authors)
	}
}

func TestVolumesNullFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"items":[{"volumeInfo":{"title":null,"authors":null,"imageLinks":null}},{"volumeInfo":{"title":"X","authors":[],"imageLinks":{"thumbnail":null}}}]}`)
	})

	res, err := c.Volumes(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	first := res.Items[0].VolumeInfo
	_, ok := first.TitleText()
	assert.False(t, ok)
	assert.Nil(t, first.Authors)
	_, ok = first.ThumbnailURL()
	assert.False(t, ok)

	second := res.Items[1].VolumeInfo
	assert.NotNil(t, second.Authors, "an empty list stays distinct from a missing one")
	assert.Empty(t, second.Authors)
	_, ok = second.ThumbnailURL()
	assert.False(t, ok)
}

func TestVolumesNoItems(t *testing.T) {
	for name, body := range map[string]string{
		"absent": `{"kind":"books#volumes","totalItems":0}`,
		"empty":  `{"items":[]}`,
		"null":   `{"items":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { writeJSON(w, body) })
			res, err := c.Volumes(context.Background(), "zzzz")
			require.NoError(t, err)
			assert.Empty(t, res.Items)
		})
	}
}

func TestVolumesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		class   string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "backend exploded", http.StatusInternalServerError)
			},
			class: ClassStatus,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			class: ClassStatus,
		},
		{
			name:    "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) { writeJSON(w, `{"items":[`) },
			class:   ClassDecode,
		},
		{
			name:    "item without volumeInfo",
			handler: func(w http.ResponseWriter, r *http.Request) { writeJSON(w, `{"items":[{"id":"a"}]}`) },
			class:   ClassDecode,
		},
		{
			name:    "authors not a list",
			handler: func(w http.ResponseWriter, r *http.Request) { writeJSON(w, `{"items":[{"volumeInfo":{"authors":"Herbert"}}]}`) },
			class:   ClassDecode,
		},
		{
			name:    "null body",
			handler: func(w http.ResponseWriter, r *http.Request) { writeJSON(w, `null`) },
			class:   ClassDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			_, err := c.Volumes(context.Background(), "q")
			require.Error(t, err)
			assert.Equal(t, tt.class, Classify(err))
		})
	}
}

func TestVolumesStatusErrorDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("try later"))
	})

	_, err := c.Volumes(context.Background(), "q")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "try later", se.Body)
}

func TestVolumesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := config.Default().Books
	cfg.Endpoint = url
	_, err := New(cfg, nil).Volumes(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, ClassTransport, Classify(err))
}

func TestVolumesLatin1(t *testing.T) {
	body, err := charmap.ISO8859_1.NewEncoder().String(`{"items":[{"volumeInfo":{"title":"Röda rummet","authors":["August Strindberg"]}}]}`)
	require.NoError(t, err)

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=ISO-8859-1")
		_, _ = w.Write([]byte(body))
	})

	res, err := c.Volumes(context.Background(), "strindberg")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	title, _ := res.Items[0].VolumeInfo.TitleText()
	assert.Equal(t, "Röda rummet", title)
}

func TestURL(t *testing.T) {
	cfg := config.Default().Books
	cfg.Endpoint = "https://example.test/volumes?langRestrict=sv"
	c := New(cfg, nil)

	assert.Equal(t, "https://example.test/volumes?langRestrict=sv&q=a%2Bb%20c&maxResults=20", c.URL("a+b c"))
}
