package handler

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

func TestFormImageFile_MissingPartIsNotAnError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "Widget"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(multipartMemoryLimit); err != nil {
		t.Fatalf("parse form: %v", err)
	}

	file, header, err := formImageFile(req)
	if err != nil {
		t.Fatalf("missing image part should not be an error, got: %v", err)
	}
	if file != nil || header != nil {
		t.Error("missing image part should yield nil file and header")
	}
}

func TestFormImageFile_PresentPart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	partHeader.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("png bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(multipartMemoryLimit); err != nil {
		t.Fatalf("parse form: %v", err)
	}

	file, header, err := formImageFile(req)
	if err != nil {
		t.Fatalf("formImageFile failed: %v", err)
	}
	if file == nil || header == nil {
		t.Fatal("expected file and header for present image part")
	}
	defer file.Close()

	if header.Filename != "photo.png" {
		t.Errorf("Filename: got %q, want %q", header.Filename, "photo.png")
	}
	if got := header.Header.Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type: got %q, want %q", got, "image/png")
	}
}
