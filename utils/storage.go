package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// SignedURLExpiry: semua foto diakses lewat signed URL berumur 1 jam.
// Kebijakan tunggal; tidak ada public URL.
const SignedURLExpiry = time.Hour

// StorageClient membungkus bucket OSS tempat foto komplain disimpan.
type StorageClient struct {
	bucket *oss.Bucket
}

// NewStorageClient membuat koneksi ke bucket foto (default: complaint-photos)
// dari environment: OSS_ENDPOINT, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET,
// OSS_BUCKET. Mengembalikan error jika konfigurasi belum lengkap.
func NewStorageClient() (*StorageClient, error) {
	endpoint := os.Getenv("OSS_ENDPOINT")
	keyID := os.Getenv("OSS_ACCESS_KEY_ID")
	keySecret := os.Getenv("OSS_ACCESS_KEY_SECRET")
	if endpoint == "" || keyID == "" || keySecret == "" {
		return nil, errors.New("konfigurasi OSS belum lengkap (OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET)")
	}

	bucketName := os.Getenv("OSS_BUCKET")
	if bucketName == "" {
		bucketName = "complaint-photos"
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat client OSS: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("gagal membuka bucket %s: %w", bucketName, err)
	}

	return &StorageClient{bucket: bucket}, nil
}

// UploadComplaintPhoto mengunggah foto bukti dan mengembalikan object key.
// Penamaan: {ticket_number}-{epoch_ms}.{ext}, misal BR-0004-1719812345678.jpg.
func (s *StorageClient) UploadComplaintPhoto(ticketNumber string, fh *multipart.FileHeader) (string, error) {
	if s == nil {
		return "", errors.New("penyimpanan foto belum dikonfigurasi")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".jpg"
	}

	objectKey := fmt.Sprintf("%s-%d%s", ticketNumber, time.Now().UnixMilli(), ext)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := s.bucket.PutObject(objectKey, src); err != nil {
		return "", fmt.Errorf("gagal upload foto: %w", err)
	}

	return objectKey, nil
}

// SignedURL membuat URL bertanda tangan (berlaku 1 jam) untuk object key.
// Key kosong menghasilkan string kosong tanpa error.
func (s *StorageClient) SignedURL(objectKey string) (string, error) {
	if s == nil || objectKey == "" {
		return "", nil
	}
	return s.bucket.SignURL(objectKey, oss.HTTPGet, int64(SignedURLExpiry.Seconds()))
}
