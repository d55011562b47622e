package xl

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postAttachment(h http.Handler, query string, data string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("data", data)
	req := httptest.NewRequest(http.MethodPost, "/attachment?"+query, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAttachmentHandler(t *testing.T) {
	payload := []byte("PK\x03\x04\x00binary\xff")
	query := url.Values{"contentType": {ContentTypeXLSX}, "fileName": {"sales.xlsx"}}.Encode()

	rec := postAttachment(&AttachmentHandler{}, query, base64.StdEncoding.EncodeToString(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != ContentTypeXLSX {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename=sales.xlsx` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(body, payload) {
		t.Errorf("body = %q, expected %q", body, payload)
	}
}

func TestAttachmentHandlerErrors(t *testing.T) {
	h := &AttachmentHandler{}

	req := httptest.NewRequest(http.MethodGet, "/attachment?fileName=a.xlsx", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d", rec.Code)
	}

	if rec := postAttachment(h, "fileName=a.xlsx", "***"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad base64: status = %d", rec.Code)
	}
	if rec := postAttachment(h, "", "QQ=="); rec.Code != http.StatusBadRequest {
		t.Errorf("missing fileName: status = %d", rec.Code)
	}

	small := &AttachmentHandler{MaxBytes: 16}
	big := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 64))
	if rec := postAttachment(small, "fileName=a.xlsx", big); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized body: status = %d", rec.Code)
	}
}

func TestAttachmentHandlerStripsPath(t *testing.T) {
	rec := postAttachment(&AttachmentHandler{}, "fileName="+url.QueryEscape("../../etc/out.xlsx"), "QQ==")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename=out.xlsx` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("default Content-Type = %q", ct)
	}
}
