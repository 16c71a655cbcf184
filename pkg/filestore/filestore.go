package filestore

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const (
	BucketImages    = "images"
	BucketVideos    = "videos"
	BucketBrochures = "brochures"
	BucketServices  = "services"
	BucketContact   = "contact"
)

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Upload is one file received with a form field.
type Upload struct {
	Field  string
	Header *multipart.FileHeader
	// Bucket overrides MIME based routing when set.
	Bucket string
}

// Stored identifies a file written by Save.
type Stored struct {
	Bucket string
	Name   string
}

// Store writes uploads under root/<bucket>/<generated name>.
type Store struct {
	root    string
	maxSize int64
	now     func() time.Time
}

func New(root string, maxSizeMB int64) *Store {
	return &Store{
		root:    root,
		maxSize: maxSizeMB << 20,
		now:     time.Now,
	}
}

func (s *Store) Root() string {
	return s.root
}

// Save sniffs the content type, picks a bucket and writes the file. The
// returned name is what gets stored in the row.
func (s *Store) Save(owner string, up Upload) (Stored, error) {
	if up.Header == nil {
		return Stored{}, errors.New("missing file header")
	}
	if s.maxSize > 0 && up.Header.Size > s.maxSize {
		return Stored{}, ErrTooLarge
	}

	src, err := up.Header.Open()
	if err != nil {
		return Stored{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return Stored{}, fmt.Errorf("failed to detect file type: %w", err)
	}

	// The content type is always checked; Bucket only changes the directory.
	bucket, err := BucketFor(mtype.String())
	if err != nil {
		return Stored{}, err
	}
	if up.Bucket != "" {
		bucket = up.Bucket
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Stored{}, fmt.Errorf("failed to rewind upload: %w", err)
	}

	name := s.FileName(owner, up.Header.Filename, mtype.Extension())
	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Stored{}, fmt.Errorf("failed to create upload dir: %w", err)
	}

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Stored{}, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return Stored{}, fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return Stored{}, fmt.Errorf("failed to write file: %w", err)
	}

	return Stored{Bucket: bucket, Name: name}, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}

	path, ok := s.locate(name)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// locate finds name in any bucket. Names carry a uuid so at most one matches.
func (s *Store) locate(name string) (string, bool) {
	if name != filepath.Base(name) {
		return "", false
	}
	for _, bucket := range []string{BucketImages, BucketVideos, BucketBrochures, BucketServices, BucketContact} {
		path := filepath.Join(s.root, bucket, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// FileName renders <owner>-<slug>-<unix millis>-<uuid><ext>.
func (s *Store) FileName(owner, original, ext string) string {
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(original))
	}
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	slug := Slugify(base)
	if slug == "" {
		slug = "file"
	}
	if owner == "" {
		owner = "0"
	}
	return fmt.Sprintf("%s-%s-%d-%s%s", owner, slug, s.now().UnixMilli(), uuid.New().String(), ext)
}

// allowedTypes lists the accepted upload types and their directories.
// Script capable types such as text/html and image/svg+xml are absent.
var allowedTypes = map[string]string{
	"image/jpeg":       BucketImages,
	"image/png":        BucketImages,
	"image/gif":        BucketImages,
	"image/webp":       BucketImages,
	"image/bmp":        BucketImages,
	"video/mp4":        BucketVideos,
	"video/webm":       BucketVideos,
	"video/quicktime":  BucketVideos,
	"video/x-msvideo":  BucketVideos,
	"video/x-matroska": BucketVideos,
	"video/mpeg":       BucketVideos,
	"application/pdf":  BucketBrochures,
}

// BucketFor routes an allowed MIME type to its upload directory.
func BucketFor(mime string) (string, error) {
	mime = strings.ToLower(strings.TrimSpace(strings.SplitN(mime, ";", 2)[0]))
	if bucket, ok := allowedTypes[mime]; ok {
		return bucket, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
}

// foldLatin drops combining marks that follow a Latin letter. Marks of other
// scripts, like the Devanagari virama and vowel signs, are kept.
func foldLatin(s string) string {
	var b strings.Builder
	latinBase := false
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			if latinBase {
				continue
			}
			b.WriteRune(r)
			continue
		}
		latinBase = unicode.Is(unicode.Latin, r)
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// Slugify lowercases, strips Latin accents and joins words with dashes.
// Letters and marks of other scripts are kept.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(foldLatin(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
