package media_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/forma-studio/forma/internal/app/features/media"
	"github.com/forma-studio/forma/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*media.Handler, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	dir := t.TempDir()
	store, err := storage.NewLocal(storage.LocalConfig{BasePath: dir, BaseURL: "/files"})
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	return media.NewHandler(db, store, "/files", zap.NewNop()), dir
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	h, dir := newTestHandler(t)

	body, contentType := multipartBody(t, "file", "floor-plan.png", []byte("fake png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithIdentity(req, primitive.NewObjectID().Hex(), "Uploader", "editor")
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var got struct {
		ID       string `json:"id"`
		Path     string `json:"path"`
		FileName string `json:"file_name"`
		URL      string `json:"url"`
		Size     int64  `json:"size"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.FileName != "floor-plan.png" {
		t.Errorf("file_name: got %q", got.FileName)
	}
	if got.URL == "" || got.URL[:7] != "/files/" {
		t.Errorf("url: got %q, want /files/ prefix", got.URL)
	}

	// The blob must exist on disk under the generated path.
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(got.Path))); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestHandleUpload_MissingFile(t *testing.T) {
	h, _ := newTestHandler(t)

	body, contentType := multipartBody(t, "attachment", "x.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var errBody struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Error != "file is required" || errBody.Details != "field: file" {
		t.Errorf("error body: got %+v", errBody)
	}
}

func TestHandleDelete(t *testing.T) {
	h, dir := newTestHandler(t)

	body, contentType := multipartBody(t, "file", "doomed.txt", []byte("bye"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var created struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/api/admin/media/"+created.ID, nil)
	delReq = testutil.WithChiURLParam(delReq, "id", created.ID)
	delRec := httptest.NewRecorder()
	h.HandleDelete(delRec, delReq)

	if delRec.Code != http.StatusNoContent {
		t.Fatalf("delete status: got %d, want 204 (body %s)", delRec.Code, delRec.Body.String())
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(created.Path))); !os.IsNotExist(err) {
		t.Errorf("blob should be gone, stat err: %v", err)
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	missing := primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/media/"+missing, nil)
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
