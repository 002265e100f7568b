package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/extract"
	"screening-backend/internal/shared/storage/object"
	"screening-backend/internal/shared/util"
)

const storageNamespace = "resumes"

// Service contains business logic for resume uploads.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload extracts text from the file, deduplicates by content fingerprint,
// and stores both the original and the extracted text. The bool result is
// false when the content matched an already stored resume.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Resume, bool, error) {
	if strings.TrimSpace(fileName) == "" {
		return Resume{}, false, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, false, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Resume{}, false, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	mimeType := http.DetectContentType(sniff)

	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		return Resume{}, false, fmt.Errorf("extract resume text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Resume{}, false, ErrEmptyDocument
	}

	fingerprint := util.Fingerprint(text)
	existing, err := s.Repo.GetByFingerprint(ctx, fingerprint)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Resume{}, false, err
	}

	storageKey, size, storedMime, err := s.Store.Save(ctx, storageNamespace, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, false, fmt.Errorf("store resume: %w", err)
	}

	extractedKey := storageKey + ".extracted.txt"
	if _, err := s.Store.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return Resume{}, false, fmt.Errorf("store extracted text: %w", err)
	}

	resume := Resume{
		ID:               uuid.NewString(),
		FileName:         fileName,
		MimeType:         storedMime,
		SizeBytes:        size,
		StorageKey:       storageKey,
		ExtractedTextKey: extractedKey,
		Fingerprint:      fingerprint,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, false, err
	}
	return resume, true, nil
}

// Get returns a resume by ID.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: resume id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns stored resumes newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Text returns the extracted text for a stored resume, re-extracting from
// the original file when no derived copy exists.
func (s *Service) Text(ctx context.Context, id string) (string, error) {
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if resume.ExtractedTextKey != "" {
		body, err := s.Store.Open(ctx, resume.ExtractedTextKey)
		if err == nil {
			defer body.Close()
			raw, err := io.ReadAll(body)
			if err != nil {
				return "", fmt.Errorf("read extracted text: %w", err)
			}
			return string(raw), nil
		}
	}

	body, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return "", fmt.Errorf("open resume: %w", err)
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	return extract.Text(ctx, raw, resume.MimeType, resume.FileName)
}
