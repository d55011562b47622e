// Package formdata builds multipart/form-data request bodies and posts them
// through a Transport.
package formdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BoundaryStub prefixes every generated boundary token.
const BoundaryStub = "ProfoundUIMIMEBoundary"

// DefaultMaxAttempts bounds the random boundary retries before the
// cryptographically random fallback token is tried.
const DefaultMaxAttempts = 100

const newline = "\r\n"

// ErrBoundaryExhausted is returned when no boundary token avoiding every part
// value could be found.
var ErrBoundaryExhausted = errors.New("no collision-free boundary found")

// Part is one field of a multipart message. A file part carries a filename
// parameter, possibly empty; ContentType then defaults to
// application/octet-stream. A non-empty FileName implies a file part.
type Part struct {
	Name             string
	Value            string
	File             bool
	FileName         string
	ContentType      string
	TransferEncoding string
}

func (p Part) isFile() bool {
	return p.File || p.FileName != ""
}

// Response is the outcome of a send.
type Response struct {
	Status int
	Text   string
}

// Message is an ordered list of parts.
type Message struct {
	parts       []Part
	random      func() int64
	transport   Transport
	maxAttempts int
	log         *zap.Logger
}

// Option configures a Message.
type Option func(*Message)

// WithRandom replaces the source of boundary suffixes.
func WithRandom(fn func() int64) Option {
	return func(m *Message) {
		m.random = fn
	}
}

// WithTransport sets the transport used by Send.
func WithTransport(t Transport) Option {
	return func(m *Message) {
		m.transport = t
	}
}

// WithMaxAttempts sets how many random boundaries are tried.
func WithMaxAttempts(n int) Option {
	return func(m *Message) {
		m.maxAttempts = n
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(m *Message) {
		if l == nil {
			l = zap.NewNop()
		}
		m.log = l
	}
}

func New(opts ...Option) *Message {
	m := &Message{
		random:      defaultRandom,
		maxAttempts: DefaultMaxAttempts,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// defaultRandom returns a suffix in [1, 1e9].
func defaultRandom() int64 {
	return rand.Int63n(1_000_000_000) + 1
}

// AddParts appends parts in order. Empty names and values are serialized
// as they are.
func (m *Message) AddParts(parts ...Part) {
	m.parts = append(m.parts, parts...)
}

// AddFields appends loosely keyed parts. Keys are matched case-insensitively
// against name, value, filename, contenttype and transferencoding. A field set
// without a string name and a string value is skipped; a string filename,
// even an empty one, makes a file part.
func (m *Message) AddFields(fields ...map[string]any) {
	for _, f := range fields {
		if p, ok := partFromFields(f); ok {
			m.parts = append(m.parts, p)
		}
	}
}

func partFromFields(fields map[string]any) (Part, bool) {
	var p Part
	var hasName, hasValue bool
	for k, v := range fields {
		s, isString := v.(string)
		if !isString {
			continue
		}
		switch strings.ToUpper(k) {
		case "NAME":
			p.Name, hasName = s, true
		case "VALUE":
			p.Value, hasValue = s, true
		case "FILENAME":
			p.FileName, p.File = s, true
		case "CONTENTTYPE":
			p.ContentType = s
		case "TRANSFERENCODING":
			p.TransferEncoding = s
		}
	}
	return p, hasName && hasValue
}

// Parts returns the parts in insertion order.
func (m *Message) Parts() []Part {
	return m.parts
}

// Boundary picks a token that occurs in no part value.
func (m *Message) Boundary() (string, error) {
	for i := 0; i < m.maxAttempts; i++ {
		b := BoundaryStub + strconv.FormatInt(m.random(), 10)
		if !m.collides(b) {
			return b, nil
		}
		m.log.Debug("boundary collision", zap.Int("attempt", i+1))
	}

	b := BoundaryStub + strings.ReplaceAll(uuid.NewString(), "-", "")
	if !m.collides(b) {
		return b, nil
	}
	return "", ErrBoundaryExhausted
}

func (m *Message) collides(boundary string) bool {
	for _, p := range m.parts {
		if strings.Contains(p.Value, boundary) {
			return true
		}
	}
	return false
}

// Body serializes the message with a fresh boundary.
func (m *Message) Body() (boundary string, body []byte, err error) {
	boundary, err = m.Boundary()
	if err != nil {
		return "", nil, err
	}
	return boundary, m.encode(boundary), nil
}

func (m *Message) encode(boundary string) []byte {
	bb := bytes.Buffer{}
	for _, p := range m.parts {
		bb.WriteString("--" + boundary + newline)
		bb.WriteString(`Content-Disposition: form-data; name="` + p.Name + `"`)
		if p.isFile() {
			contentType := p.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			bb.WriteString(`; filename="` + p.FileName + `"` + newline)
			bb.WriteString("Content-Type: " + contentType)
		}
		if p.TransferEncoding != "" {
			bb.WriteString(newline + "Content-Transfer-Encoding: " + p.TransferEncoding)
		}
		bb.WriteString(newline + newline)
		bb.WriteString(p.Value)
		bb.WriteString(newline)
	}
	bb.WriteString("--" + boundary + "--")
	return bb.Bytes()
}

// ContentType is the request header value for a boundary.
func ContentType(boundary string) string {
	return "multipart/form-data; boundary=" + boundary
}

// Send posts the message to url. Any HTTP status is returned in the
// response; only transport failures are errors.
func (m *Message) Send(ctx context.Context, url string) (Response, error) {
	if m.transport == nil {
		return Response{}, fmt.Errorf("formdata: no transport")
	}
	boundary, body, err := m.Body()
	if err != nil {
		return Response{}, err
	}
	res, err := m.transport.Post(ctx, url, body, map[string]string{
		"Content-Type": ContentType(boundary),
	})
	if err != nil {
		m.log.Error("multipart send", zap.String("url", url), zap.Error(err))
		return res, err
	}
	m.log.Debug("multipart sent",
		zap.String("url", url),
		zap.Int("parts", len(m.parts)),
		zap.Int("bytes", len(body)),
		zap.Int("status", res.Status))
	return res, nil
}

// SendAsync runs Send in the background and calls done once with its result.
func (m *Message) SendAsync(ctx context.Context, url string, done func(Response, error)) {
	go func() {
		res, err := m.Send(ctx, url)
		if done != nil {
			done(res, err)
		}
	}()
}
