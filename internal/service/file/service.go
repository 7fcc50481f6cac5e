package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // accept PNG frames from browser capture
	"io"
	"math"
	"path/filepath"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// Proof photos are evidence, not photography: recompress anything the
// camera hands us into this size band before storing.
const (
	maxFrameBytes = 150 * 1024
	minFrameBytes = 50 * 1024
)

// Service stores capture frames and report exports. It implements the
// capture workflow's FrameStore.
type Service interface {
	SaveFrame(ctx context.Context, employeeID string, day time.Time, kind attendance.EventKind, frame []byte) (string, error)

	// SaveExport stores a generated report file and returns its key.
	SaveExport(ctx context.Context, filename string, content io.Reader) (string, error)

	// FrameURL resolves a stored frame reference to a fetchable URL.
	FrameURL(ctx context.Context, path string) (string, error)

	Delete(ctx context.Context, path string) error
}

type serviceImpl struct {
	storage   storage.FileStorage
	exportDir string
	now       func() time.Time
}

func NewService(fs storage.FileStorage, exportDir string) Service {
	return &serviceImpl{
		storage:   fs,
		exportDir: exportDir,
		now:       time.Now,
	}
}

// SaveFrame recompresses the frame to the evidence size band and stores
// it under attendance/{date}/{employeeID}-{kind}-{unix}.jpg. The frame
// always lands as JPEG regardless of the capture format.
func (s *serviceImpl) SaveFrame(ctx context.Context, employeeID string, day time.Time, kind attendance.EventKind, frame []byte) (string, error) {
	if len(frame) == 0 {
		return "", fmt.Errorf("empty capture frame")
	}

	compressed, err := compressFrame(frame, maxFrameBytes, minFrameBytes)
	if err != nil {
		return "", fmt.Errorf("failed to compress capture frame: %w", err)
	}

	filename := fmt.Sprintf("%s-%s-%d.jpg", employeeID, kind, s.now().Unix())
	path := filepath.Join("attendance", day.Format("2006-01-02"), filename)

	stored, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to store capture frame: %w", err)
	}
	return stored, nil
}

// SaveExport implements Service.
func (s *serviceImpl) SaveExport(ctx context.Context, filename string, content io.Reader) (string, error) {
	path := filepath.Join(s.exportDir, filename)
	stored, err := s.storage.Upload(ctx, content, path, "text/csv")
	if err != nil {
		return "", fmt.Errorf("failed to store report export: %w", err)
	}
	return stored, nil
}

// FrameURL implements Service.
func (s *serviceImpl) FrameURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path, 0)
}

// Delete implements Service.
func (s *serviceImpl) Delete(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// compressFrame re-encodes an image into the [minSize, maxSize] band,
// first by lowering JPEG quality and then by downscaling.
func compressFrame(buffer []byte, maxSize, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}
		if len(compressed) > maxSize {
			quality -= 5
			continue
		}
		// Smaller than the band at an already-low quality is acceptable.
		if len(compressed) < minSize && quality <= 60 {
			return compressed, nil
		}
		break
	}

	if len(compressed) > maxSize {
		targetSize := (maxSize + minSize) / 2
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)
		if newWidth < 600 {
			newWidth = 600
		}
		if newHeight < 400 {
			newHeight = 400
		}

		resized := scale(img, newWidth, newHeight)

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}
		compressed = buf.Bytes()
	}

	return compressed, nil
}

func scale(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
