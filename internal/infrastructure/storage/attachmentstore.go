package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AttachmentStore persists uploaded files on disk, keyed by ticket ID.
// Stored names are sanitized so a crafted filename cannot escape the
// attachment directory.
type AttachmentStore struct {
	baseDir string
}

func NewAttachmentStore(baseDir string) (*AttachmentStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment directory: %w", err)
	}
	return &AttachmentStore{baseDir: baseDir}, nil
}

// Save writes the attachment content and returns the relative storage path.
func (s *AttachmentStore) Save(ticketID uint, filename string, r io.Reader) (string, int64, error) {
	safe := SanitizeFilename(filename)
	if safe == "" {
		return "", 0, fmt.Errorf("invalid filename %q", filename)
	}

	dir := filepath.Join(s.baseDir, fmt.Sprintf("%d", ticketID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create ticket directory: %w", err)
	}

	dest := filepath.Join(dir, safe)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(dest)
		return "", 0, fmt.Errorf("failed to write attachment: %w", err)
	}

	rel := filepath.Join(fmt.Sprintf("%d", ticketID), safe)
	return rel, size, nil
}

// Open returns a reader for a previously stored attachment.
func (s *AttachmentStore) Open(storagePath string) (io.ReadCloser, error) {
	full, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	return f, nil
}

// Delete removes a stored attachment. Missing files are not an error.
func (s *AttachmentStore) Delete(storagePath string) error {
	full, err := s.resolve(storagePath)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// DeleteTicket removes all attachments for a ticket.
func (s *AttachmentStore) DeleteTicket(ticketID uint) error {
	dir := filepath.Join(s.baseDir, fmt.Sprintf("%d", ticketID))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete ticket attachments: %w", err)
	}
	return nil
}

// resolve joins a relative storage path against the base directory and
// rejects paths that would escape it.
func (s *AttachmentStore) resolve(storagePath string) (string, error) {
	full := filepath.Join(s.baseDir, filepath.Clean("/"+storagePath))
	rel, err := filepath.Rel(s.baseDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage path %q", storagePath)
	}
	return full, nil
}

// SanitizeFilename strips directory components and path traversal from
// an uploaded filename. Returns "" when nothing usable remains.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
