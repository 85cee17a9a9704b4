package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"labpipe/internal/model"
	"labpipe/internal/repository"
	"labpipe/internal/storage"
)

var (
	ErrReaderNil       = errors.New("reader is nil")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)

// UploadInput carries one multipart upload: the primary sequencing file,
// an optional sample-sheet spreadsheet, and capture metadata.
type UploadInput struct {
	Reader       io.Reader
	OriginalName string
	ContentType  string
	Size         int64

	MetadataReader io.Reader
	MetadataName   string
	MetadataSize   int64

	Place      string
	CapturedAt *time.Time
	Weather    string
}

// FileService defines the use cases for handling uploaded sequencing files.
type FileService interface {
	// Upload validates the extension, streams bytes to object storage under
	// a uuid key, and records a metadata row. The whole request fails with
	// ErrInvalidFileType on a disallowed extension.
	Upload(ctx context.Context, in UploadInput) (*model.File, error)

	// Get returns a single file record by its ID.
	Get(ctx context.Context, id string) (*model.File, error)

	// List returns all file records, newest first.
	List(ctx context.Context) ([]model.File, error)
}

type fileService struct {
	store      storage.Storage
	repo       repository.FileRepository
	extensions map[string]struct{}
}

// NewFileService constructs a FileService. allowedExtensions are matched
// case-insensitively against the original filename suffix.
func NewFileService(store storage.Storage, repo repository.FileRepository, allowedExtensions []string) FileService {
	exts := make(map[string]struct{}, len(allowedExtensions))
	for _, e := range allowedExtensions {
		exts[strings.ToLower(e)] = struct{}{}
	}
	return &fileService{store: store, repo: repo, extensions: exts}
}

func (s *fileService) allowed(name string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func (s *fileService) Upload(ctx context.Context, in UploadInput) (*model.File, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if !s.allowed(in.OriginalName) {
		return nil, ErrInvalidFileType
	}

	// Objects are keyed by uuid, not original filename, so two uploads of
	// sample.pod5 never overwrite each other.
	key := objectKey(in.OriginalName)
	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.OriginalName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	metadataPath := ""
	if in.MetadataReader != nil {
		if !s.allowed(in.MetadataName) {
			return nil, ErrInvalidFileType
		}
		metaKey := objectKey(in.MetadataName)
		metaInfo, err := s.store.Put(ctx, metaKey, in.MetadataReader, storage.PutObjectOptions{
			Size: in.MetadataSize,
			Metadata: map[string]string{
				"original-filename": in.MetadataName,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("upload metadata file: %w", err)
		}
		metadataPath = metaInfo.Key
	}

	file := &model.File{
		ID:           uuid.New().String(),
		OriginalName: in.OriginalName,
		ContentType:  in.ContentType,
		Size:         objInfo.Size,
		StoragePath:  objInfo.Key,
		MetadataPath: metadataPath,
		Place:        in.Place,
		CapturedAt:   in.CapturedAt,
		Weather:      in.Weather,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, file)
	if err != nil {
		// Rollback: remove the orphaned object(s).
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if metadataPath != "" {
			_ = s.store.Delete(ctx, metadataPath)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *fileService) Get(ctx context.Context, id string) (*model.File, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *fileService) List(ctx context.Context) ([]model.File, error) {
	return s.repo.List(ctx)
}

func objectKey(originalName string) string {
	ext := filepath.Ext(originalName)
	return filepath.ToSlash(filepath.Join("uploads", uuid.New().String()+ext))
}
