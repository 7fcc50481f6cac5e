package file

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	files map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (m *memoryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.files[path] = data
	return path, nil
}

func (m *memoryStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.files[path])), nil
}

func (m *memoryStorage) Delete(ctx context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func (m *memoryStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

func (m *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

// testJPEG encodes a solid image large enough to decode cleanly.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestSaveFrameStoresJPEGUnderAttendancePath(t *testing.T) {
	store := newMemoryStorage()
	svc := NewService(store, "exports")

	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	frame := testJPEG(t, 640, 480)

	path, err := svc.SaveFrame(context.Background(), "emp-1", day, attendance.EventCheckIn, frame)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "attendance/2025-04-01/emp-1-check_in-"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))
	assert.NotEmpty(t, store.files[path])
}

func TestSaveFrameRejectsEmptyAndGarbageFrames(t *testing.T) {
	svc := NewService(newMemoryStorage(), "exports")
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.SaveFrame(context.Background(), "emp-1", day, attendance.EventCheckIn, nil)
	assert.Error(t, err)

	_, err = svc.SaveFrame(context.Background(), "emp-1", day, attendance.EventCheckIn, []byte("not an image"))
	assert.Error(t, err)
}

func TestCompressFramePassesThroughWithinBand(t *testing.T) {
	// A frame already inside the size band is stored byte for byte.
	frame := bytes.Repeat([]byte{0xAB}, 80*1024)
	out, err := compressFrame(frame, maxFrameBytes, minFrameBytes)
	require.NoError(t, err)
	assert.Equal(t, frame, out)
}

func TestCompressFrameShrinksOversizedImage(t *testing.T) {
	frame := testJPEG(t, 4000, 3000)
	if len(frame) <= maxFrameBytes {
		t.Skip("generated image too small to exercise compression")
	}

	out, err := compressFrame(frame, maxFrameBytes, minFrameBytes)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out), maxFrameBytes)

	_, _, err = image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
}

func TestFrameURLResolvesStoredPath(t *testing.T) {
	store := newMemoryStorage()
	svc := NewService(store, "exports")

	url, err := svc.FrameURL(context.Background(), "attendance/2025-04-01/emp-1-check_in-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/attendance/2025-04-01/emp-1-check_in-1.jpg", url)
}

func TestSaveExport(t *testing.T) {
	store := newMemoryStorage()
	svc := NewService(store, "exports")

	path, err := svc.SaveExport(context.Background(), "attendance-2025-04-01.csv", strings.NewReader("a,b,c\n"))
	require.NoError(t, err)
	assert.Equal(t, "exports/attendance-2025-04-01.csv", path)
	assert.Equal(t, []byte("a,b,c\n"), store.files[path])
}
