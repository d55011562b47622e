package xl

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compressor packs named parts into a single archive. A fresh archive is
// produced on every call.
type Compressor interface {
	Compress(ctx context.Context, parts []Part) ([]byte, error)
}

// ZipCompressor packs parts into a deflated ZIP container.
type ZipCompressor struct{}

func (ZipCompressor) Compress(ctx context.Context, parts []Part) ([]byte, error) {
	bb := bytes.Buffer{}
	zs := NewZipStorage(&bb)
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := zs.WriteBlob(p.Name, p.Data); err != nil {
			return nil, &PartError{Part: p.Name, Err: err}
		}
	}
	if err := zs.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// Archive is a complete spreadsheet package.
type Archive struct {
	ID          uuid.UUID // fingerprint of Data
	ContentType string
	Data        []byte
}

// Builder turns a worksheet into an archive and hands it to a Saver.
type Builder struct {
	compressor Compressor
	saver      Saver
	log        *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithCompressor replaces the ZIP compressor.
func WithCompressor(c Compressor) Option {
	return func(b *Builder) {
		b.compressor = c
	}
}

// WithSaver sets the delivery strategy used by Download.
func WithSaver(s Saver) Option {
	return func(b *Builder) {
		b.saver = s
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l == nil {
			l = zap.NewNop()
		}
		b.log = l
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		compressor: ZipCompressor{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build freezes ws and produces its archive. Compression failures are not
// retried; on error no archive is returned.
func (b *Builder) Build(ctx context.Context, ws *Worksheet) (*Archive, error) {
	if err := ws.freeze(); err != nil {
		return nil, err
	}
	defer ws.release()
	return b.build(ctx, ws)
}

// build expects ws to be frozen by the caller.
func (b *Builder) build(ctx context.Context, ws *Worksheet) (*Archive, error) {
	start := time.Now()
	parts, err := NewWriter(nil).Parts(ws)
	if err != nil {
		return nil, err
	}

	data, err := b.compressor.Compress(ctx, parts)
	if err != nil {
		b.log.Error("compress package", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCompress, err)
	}

	a := &Archive{
		ID:          ArchiveHash(data),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}
	b.log.Debug("package built",
		zap.Stringer("archive", a.ID),
		zap.Int("rows", len(ws.rows)),
		zap.Int("columns", len(ws.columns)),
		zap.Int("sharedStrings", ws.strings.Len()),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))
	return a, nil
}

// WriteParts freezes ws and writes its uncompressed parts into s, for
// example a DirStorage for inspection.
func (b *Builder) WriteParts(ws *Worksheet, s Storage) error {
	return NewWriter(s).Write(ws)
}

// Download builds the archive for ws and delivers it under fileName through
// the configured Saver.
func (b *Builder) Download(ctx context.Context, fileName string, ws *Worksheet) error {
	if err := ws.freeze(); err != nil {
		return err
	}
	defer ws.release()
	return b.download(ctx, fileName, ws)
}

func (b *Builder) download(ctx context.Context, fileName string, ws *Worksheet) error {
	if b.saver == nil {
		return ErrNoSaver
	}
	a, err := b.build(ctx, ws)
	if err != nil {
		return err
	}
	fileName = WithExtension(fileName)
	if err := b.saver.Save(ctx, fileName, a); err != nil {
		b.log.Error("save package", zap.String("file", fileName), zap.Stringer("archive", a.ID), zap.Error(err))
		return err
	}
	b.log.Info("package saved", zap.String("file", fileName), zap.Stringer("archive", a.ID))
	return nil
}

// DownloadAsync freezes ws right away and runs the rest of Download in the
// background. The returned channel receives exactly one result and is then
// closed.
func (b *Builder) DownloadAsync(ctx context.Context, fileName string, ws *Worksheet) <-chan error {
	done := make(chan error, 1)
	if err := ws.freeze(); err != nil {
		done <- err
		close(done)
		return done
	}
	go func() {
		defer close(done)
		defer ws.release()
		done <- b.download(ctx, fileName, ws)
	}()
	return done
}
