package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadFixture(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("images", filename)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["images"][0]
}

func TestSaveKeepsExtensionAndWritesFile(t *testing.T) {
	root := t.TempDir()
	store := New(root, "")

	rel, err := store.Save("products/1/2", uploadFixture(t, "photo.jpg", "jpeg-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !strings.HasPrefix(rel, "products/1/2/") || !strings.HasSuffix(rel, ".jpg") {
		t.Fatalf("unexpected path: %s", rel)
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("content = %q", data)
	}
}

func TestPublicURL(t *testing.T) {
	if got := New("/tmp", "").PublicURL("products/1/a.jpg"); got != "/storage/products/1/a.jpg" {
		t.Fatalf("fallback url = %s", got)
	}
	if got := New("/tmp", "https://cdn.example.com/files/").PublicURL("/products/1/a.jpg"); got != "https://cdn.example.com/files/products/1/a.jpg" {
		t.Fatalf("base url = %s", got)
	}
}
