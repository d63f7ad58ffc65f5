package photos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/storage"
)

const (
	imagesPrefix = "images/"

	defaultMaxDownloadBytes int64 = 10 << 20
)

type PhotoUseCase interface {
	UploadByLink(ctx context.Context, link string) (string, error)
	Upload(ctx context.Context, files []Upload) ([]string, error)
}

// Upload is one file of a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type PhotoService struct {
	store       storage.ObjectStore
	client      *http.Client
	maxDownload int64
	now         func() time.Time
	log         *slog.Logger
}

type Option func(*PhotoService)

func WithHTTPClient(client *http.Client) Option {
	return func(s *PhotoService) {
		s.client = client
	}
}

func WithDownloadTimeout(d time.Duration) Option {
	return func(s *PhotoService) {
		if d > 0 {
			s.client = &http.Client{Timeout: d}
		}
	}
}

// WithMaxDownloadBytes caps the size of a photo fetched by UploadByLink.
func WithMaxDownloadBytes(n int64) Option {
	return func(s *PhotoService) {
		if n > 0 {
			s.maxDownload = n
		}
	}
}

func NewPhotoService(store storage.ObjectStore, opts ...Option) *PhotoService {
	s := &PhotoService{
		store:       store,
		client:      &http.Client{Timeout: 30 * time.Second},
		maxDownload: defaultMaxDownloadBytes,
		now:         time.Now,
		log:         slog.Default().With("module", "photos"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadByLink downloads link and stores it as photo<unixms>.jpg.
func (s *PhotoService) UploadByLink(ctx context.Context, link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("%w: link is required", domain.ErrUpload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %v", domain.ErrUpload, link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download %s: status %d", domain.ErrUpload, link, resp.StatusCode)
	}

	if resp.ContentLength > s.maxDownload {
		return "", fmt.Errorf("%w: download %s: %d bytes exceeds limit of %d", domain.ErrUpload, link, resp.ContentLength, s.maxDownload)
	}
	// Read one byte past the limit so bodies without Content-Length are caught too.
	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxDownload+1))
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %v", domain.ErrUpload, link, err)
	}
	if int64(len(data)) > s.maxDownload {
		return "", fmt.Errorf("%w: download %s: body exceeds limit of %d bytes", domain.ErrUpload, link, s.maxDownload)
	}

	name := fmt.Sprintf("photo%d.jpg", s.now().UnixMilli())
	url, err := s.store.Put(ctx, imagesPrefix+name, bytes.NewReader(data), "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("%w: store %s: %v", domain.ErrUpload, name, err)
	}
	s.log.InfoContext(ctx, "photo imported", "operation", "upload_by_link", "key", imagesPrefix+name)
	return url, nil
}

// Upload stores files one after another. The first failure aborts the batch;
// objects already stored are left in place.
func (s *PhotoService) Upload(ctx context.Context, files []Upload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.uploadOne(ctx, f)
		if err != nil {
			s.log.WarnContext(ctx, "batch upload aborted",
				"operation", "upload", "file", f.Filename, "stored", len(urls), "error", err)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *PhotoService) uploadOne(ctx context.Context, f Upload) (string, error) {
	name := path.Base(strings.ReplaceAll(f.Filename, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrUpload, f.Filename)
	}
	if f.Open == nil {
		return "", fmt.Errorf("%w: %s has no content", domain.ErrUpload, name)
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", domain.ErrUpload, name, err)
	}
	defer rc.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.store.Put(ctx, imagesPrefix+name, rc, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: store %s: %v", domain.ErrUpload, name, err)
	}
	return url, nil
}

var _ PhotoUseCase = (*PhotoService)(nil)
