package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageUpload(t *testing.T) {
	var gotPath, gotBody, gotType, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotKey = r.Header.Get("apikey")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Key":"capacitaciones-archivos/videos/1_abc.mp4"}`))
	}))
	defer srv.Close()

	s := NewStorageClient(srv.URL, "service-key", "capacitaciones-archivos", 5*time.Second)
	err := s.Upload(context.Background(), "videos/1_abc.mp4", strings.NewReader("bytes"), "video/mp4")

	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/capacitaciones-archivos/videos/1_abc.mp4", gotPath)
	assert.Equal(t, "bytes", gotBody)
	assert.Equal(t, "video/mp4", gotType)
	assert.Equal(t, "service-key", gotKey)
}

func TestStorageUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	}))
	defer srv.Close()

	s := NewStorageClient(srv.URL, "k", "b", 5*time.Second)
	err := s.Upload(context.Background(), "videos/x.mp4", strings.NewReader(""), "video/mp4")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.Equal(t, "The resource already exists", err.Error())
}

func TestStorageRemove(t *testing.T) {
	var body struct {
		Prefixes []string `json:"prefixes"`
	}
	var method, path string
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewStorageClient(srv.URL, "k", "capacitaciones-archivos", 5*time.Second)

	require.NoError(t, s.Remove(context.Background(), nil))
	assert.Equal(t, 0, calls)

	require.NoError(t, s.Remove(context.Background(), []string{"documentos/1.pdf", "videos/2.mp4"}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/storage/v1/object/capacitaciones-archivos", path)
	assert.Equal(t, []string{"documentos/1.pdf", "videos/2.mp4"}, body.Prefixes)
}

func TestStoragePublicURL(t *testing.T) {
	s := NewStorageClient("https://abc.supabase.co/", "k", "capacitaciones-archivos", time.Second)

	assert.Equal(t,
		"https://abc.supabase.co/storage/v1/object/public/capacitaciones-archivos/documentos/1_a%20b.pdf",
		s.PublicURL("documentos/1_a b.pdf"))
}

func TestAuthAdminCreateUser(t *testing.T) {
	id := uuid.New()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"` + id.String() + `","email":"ana@example.com"}`))
	}))
	defer srv.Close()

	a := NewAuthAdminClient(srv.URL, "service-key", 5*time.Second)
	created, err := a.CreateUser(context.Background(), "ana@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, id, created)
	assert.Equal(t, true, got["email_confirm"])
	assert.Equal(t, "ana@example.com", got["email"])
}

func TestAuthAdminCreateUserDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":422,"error_code":"email_exists","msg":"A user with this email address has already been registered"}`))
	}))
	defer srv.Close()

	a := NewAuthAdminClient(srv.URL, "k", 5*time.Second)
	_, err := a.CreateUser(context.Background(), "ana@example.com", "secret123")

	require.Error(t, err)
	assert.Equal(t, "A user with this email address has already been registered", err.Error())
}

func TestAuthAdminDeleteUser(t *testing.T) {
	id := uuid.New()
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a := NewAuthAdminClient(srv.URL, "k", 5*time.Second)

	require.NoError(t, a.DeleteUser(context.Background(), id))
	assert.Equal(t, "/auth/v1/admin/users/"+id.String(), path)
}
