package ticket

import (
	"fmt"
	"time"

	"derbydesk/internal/shared/biztime"
)

type Attachment struct {
	id          uint
	ticketID    uint
	uploaderID  uint
	filename    string
	storagePath string
	contentType string
	sizeBytes   int64
	createdAt   time.Time
}

func NewAttachment(
	ticketID uint,
	uploaderID uint,
	filename string,
	storagePath string,
	contentType string,
	sizeBytes int64,
) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if len(filename) == 0 {
		return nil, fmt.Errorf("filename is required")
	}
	if len(storagePath) == 0 {
		return nil, fmt.Errorf("storage path is required")
	}
	if sizeBytes < 0 {
		return nil, fmt.Errorf("size cannot be negative")
	}

	return &Attachment{
		ticketID:    ticketID,
		uploaderID:  uploaderID,
		filename:    filename,
		storagePath: storagePath,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	ticketID uint,
	uploaderID uint,
	filename string,
	storagePath string,
	contentType string,
	sizeBytes int64,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:          id,
		ticketID:    ticketID,
		uploaderID:  uploaderID,
		filename:    filename,
		storagePath: storagePath,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		createdAt:   createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) UploaderID() uint {
	return a.uploaderID
}

func (a *Attachment) Filename() string {
	return a.filename
}

func (a *Attachment) StoragePath() string {
	return a.storagePath
}

func (a *Attachment) ContentType() string {
	return a.contentType
}

func (a *Attachment) SizeBytes() int64 {
	return a.sizeBytes
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
