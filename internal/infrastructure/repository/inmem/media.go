package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Upload struct {
	Key         string
	Folder      string
	ContentType string
	Data        []byte
	Private     bool
}

// MediaStore records uploads and deletions instead of talking to S3.
type MediaStore struct {
	mu      sync.Mutex
	uploads []Upload
	deleted []string

	// UploadErr, when set, makes uploads fail once FailAfter of them have
	// succeeded. FailAfter zero fails every upload.
	UploadErr error
	FailAfter int
}

func NewMediaStore() *MediaStore {
	return &MediaStore{}
}

func (m *MediaStore) UploadPublic(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	return m.upload(folder, contentType, data, false)
}

func (m *MediaStore) UploadPrivate(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	return m.upload(folder, contentType, data, true)
}

func (m *MediaStore) upload(folder, contentType string, data []byte, private bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UploadErr != nil && len(m.uploads) >= m.FailAfter {
		return "", m.UploadErr
	}
	key := folder + "/" + uuid.NewString()
	m.uploads = append(m.uploads, Upload{
		Key:         key,
		Folder:      folder,
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
		Private:     private,
	})
	return key, nil
}

func (m *MediaStore) Delete(ctx context.Context, key string, private bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *MediaStore) PublicURL(key string) string {
	return "https://media.test/" + key
}

func (m *MediaStore) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return fmt.Sprintf("https://media.test/signed/%s?ttl=%d", key, int(expires.Seconds())), nil
}

func (m *MediaStore) Uploads() []Upload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Upload(nil), m.uploads...)
}

func (m *MediaStore) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}
