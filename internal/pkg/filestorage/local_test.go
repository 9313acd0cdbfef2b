package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["audio"][0]
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	ref, err := storage.SaveFileWithPath(newFileHeader(t, "Narration.MP3", []byte("id3")), AudioDir)
	if err != nil {
		t.Fatalf("SaveFileWithPath: %v", err)
	}
	if !strings.HasPrefix(ref, "uploads/audio/") || !strings.HasSuffix(ref, ".mp3") {
		t.Fatalf("unexpected reference %q", ref)
	}

	full := storage.GetFullPath(ref)
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(data) != "id3" {
		t.Fatalf("stored content = %q", data)
	}

	if err := storage.DeleteFile(ref); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Fatalf("file still present after delete")
	}
	if err := storage.DeleteFile(ref); err != nil {
		t.Fatalf("second DeleteFile should be a no-op, got %v", err)
	}
}

func TestLocalStorage_BaseURL(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	ref, err := storage.SaveFileWithPath(newFileHeader(t, "a.wav", []byte("x")), AudioDir)
	if err != nil {
		t.Fatalf("SaveFileWithPath: %v", err)
	}
	if !strings.HasPrefix(ref, "http://localhost:8080/uploads/audio/") {
		t.Fatalf("unexpected reference %q", ref)
	}
	if storage.GetFullPath(ref) == "" {
		t.Fatal("reference should resolve to a path")
	}
}

func TestLocalStorage_GetFullPathRejectsEscapes(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	for _, ref := range []string{"", "/etc/passwd", "uploads/../secret", "uploads/"} {
		if got := storage.GetFullPath(ref); got != "" {
			t.Errorf("GetFullPath(%q) = %q, want empty", ref, got)
		}
	}
}

func TestLocalStorage_NilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	ref, err := storage.SaveFileWithPath(nil, AudioDir)
	if err != nil || ref != "" {
		t.Fatalf("SaveFileWithPath(nil) = %q, %v", ref, err)
	}
}
