package xl

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jjonline/share-mod-lib/guzzle"
	"go.uber.org/zap"
)

// Saver delivers a finished archive under a file name.
type Saver interface {
	Save(ctx context.Context, fileName string, a *Archive) error
}

// WithExtension appends ".xlsx" to name unless it already ends with it.
func WithExtension(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return name
	}
	return name + ".xlsx"
}

// FileSaver saves archives directly as files in Dir.
type FileSaver struct {
	Dir string
}

func (s *FileSaver) Save(ctx context.Context, fileName string, a *Archive) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn := filepath.Join(s.Dir, filepath.Base(fileName))
	return os.WriteFile(fn, a.Data, 0644)
}

// AttachmentSaver base64-encodes archives and posts them to a server helper
// endpoint that performs the save on the caller's behalf (see
// AttachmentHandler). The archive travels in the form field "data", content
// type and file name in the query string.
type AttachmentSaver struct {
	Endpoint string
	Client   *guzzle.Client

	// Sink, when set, receives the bytes the endpoint sends back.
	Sink Saver
}

func (s *AttachmentSaver) Save(ctx context.Context, fileName string, a *Archive) error {
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return fmt.Errorf("attachment endpoint: %w", err)
	}
	q := u.Query()
	q.Set("contentType", a.ContentType)
	q.Set("fileName", fileName)
	u.RawQuery = q.Encode()

	form := url.Values{}
	form.Set("data", base64.StdEncoding.EncodeToString(a.Data))

	client := s.Client
	if client == nil {
		client = guzzle.New(nil, nil)
	}
	res, err := client.Form(ctx, http.MethodPost, u.String(), strings.NewReader(form.Encode()), nil)
	if errors.Is(err, guzzle.ErrResponseNotOK) {
		return fmt.Errorf("attachment endpoint: status %d", res.StatusCode)
	}
	if err != nil {
		return fmt.Errorf("attachment endpoint: %w", err)
	}

	if s.Sink != nil {
		return s.Sink.Save(ctx, fileName, &Archive{
			ID:          ArchiveHash(res.Body),
			ContentType: a.ContentType,
			Data:        res.Body,
		})
	}
	return nil
}

// Capabilities describes what the runtime can do to deliver an archive.
type Capabilities struct {
	// DirectSave is true when archives can be written straight to the
	// destination directory.
	DirectSave bool
}

// ProbeCapabilities checks once whether dir accepts new files.
func ProbeCapabilities(dir string) Capabilities {
	if dir == "" {
		return Capabilities{}
	}
	f, err := os.CreateTemp(dir, ".xlsx-probe-*")
	if err != nil {
		return Capabilities{}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return Capabilities{DirectSave: true}
}

// SelectSaver picks the delivery strategy for the probed capabilities: a
// FileSaver into dir, or an AttachmentSaver posting to endpoint.
func SelectSaver(c Capabilities, dir, endpoint string, client *guzzle.Client, log *zap.Logger) (Saver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if c.DirectSave {
		log.Debug("saver selected", zap.String("saver", "file"), zap.String("dir", dir))
		return &FileSaver{Dir: dir}, nil
	}
	if endpoint == "" {
		return nil, errors.New("xl: no direct save and no attachment endpoint")
	}
	log.Debug("saver selected", zap.String("saver", "attachment"), zap.String("endpoint", endpoint))
	return &AttachmentSaver{Endpoint: endpoint, Client: client}, nil
}
