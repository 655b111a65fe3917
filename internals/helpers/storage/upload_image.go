// file: internals/helpers/storage/upload_image.go
package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"sportku_backend/internals/configs"
)

const (
	maxImageWidth = 1280
	webpQuality   = 80
)

// ConvertToWebP decodes a JPEG/PNG upload, downscales it to a sane width
// and re-encodes as webp so sport images stay small in the bucket.
func ConvertToWebP(r io.Reader) (*bytes.Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return out, nil
}

// UploadSportImage converts the uploaded file to webp and pushes it to the
// Supabase "image" bucket. Returns the public URL.
func UploadSportImage(folder string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	buf, err := ConvertToWebP(src)
	if err != nil {
		return "", err
	}

	filename := GenerateUniqueFilename(folder, fileHeader.Filename)
	filename = strings.TrimSuffix(filename, extOf(filename)) + ".webp"

	if err := UploadToSupabase("image", filename, "image/webp", buf); err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/image/%s",
		configs.SupabaseURL, filename)
	return publicURL, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return unsafeChars.ReplaceAllString(name, "-")
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	uuidStr := uuid.New().String()
	safeFilename := sanitizeFilename(originalFilename)
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuidStr, safeFilename)
}

func UploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) error {
	supabaseURL := configs.SupabaseURL
	supabaseKey := configs.SupabaseKey

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL or SUPABASE_SERVICE_KEY not set")
	}

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, uploadURL, data)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func DeleteFromSupabase(bucket, path string) error {
	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		configs.SupabaseURL, bucket, path)

	req, err := http.NewRequest(http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+configs.SupabaseKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ExtractSupabasePath splits a public object URL back into bucket + path,
// used when replacing or removing an old sport image.
func ExtractSupabasePath(fullURL string) (bucket string, path string, err error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return "", "", err
	}
	const marker = "/storage/v1/object/public/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", "", fmt.Errorf("not a supabase public object URL")
	}
	rest := u.Path[idx+len(marker):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("cannot split bucket and path from %q", rest)
	}
	return parts[0], parts[1], nil
}
