package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filenamePattern = regexp.MustCompile(`^\d{13}_[0-9a-v]{20}(\.png|\.jpg|\.jpeg)?$`)

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		original string
		ext      string
	}{
		{"avatar.png", ".png"},
		{"Photo.JPG", ".jpg"},
		{"photo.jpeg", ".jpeg"},
		{"../../etc/passwd", ""},
		{"shell.php", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			name := GenerateFilename(tt.original)
			assert.Regexp(t, filenamePattern, name)
			assert.Equal(t, tt.ext, filepath.Ext(name))
		})
	}

	assert.NotEqual(t, GenerateFilename("a.png"), GenerateFilename("a.png"))
}

func TestLocalStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, "/public")
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	publicPath, err := s.Save(context.Background(), "me.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/public/"), publicPath)

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(publicPath, "/public/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestLocalStorage_Delete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/public")
	require.NoError(t, err)

	publicPath, err := s.Save(context.Background(), "me.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), publicPath))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, s.Delete(context.Background(), publicPath), "deleting a missing file succeeds")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestLocalStorage_Save_ReadError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/public")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "me.png", "image/png", failingReader{})
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file must be removed")
}

type fakeS3 struct {
	input   *s3.PutObjectInput
	deleted *s3.DeleteObjectInput
	body    []byte
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_Save(t *testing.T) {
	client := &fakeS3{}
	s := NewS3StorageWithClient(client, "avatars", "http://localhost:9000/", "us-east-1")

	url, err := s.Save(context.Background(), "me.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "avatars", aws.ToString(client.input.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(10), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "jpeg-bytes", string(client.body))

	key := aws.ToString(client.input.Key)
	assert.True(t, strings.HasPrefix(key, "profile-images/"), key)
	assert.Equal(t, "http://localhost:9000/avatars/"+key, url)
}

func TestS3Storage_Save_AWSURL(t *testing.T) {
	client := &fakeS3{}
	s := NewS3StorageWithClient(client, "avatars", "", "eu-west-1")

	url, err := s.Save(context.Background(), "me.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://avatars.s3.eu-west-1.amazonaws.com/profile-images/"), url)
}

func TestS3Storage_Save_Error(t *testing.T) {
	s := NewS3StorageWithClient(&fakeS3{err: errors.New("access denied")}, "avatars", "", "eu-west-1")

	url, err := s.Save(context.Background(), "me.png", "image/png", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestS3Storage_Delete(t *testing.T) {
	client := &fakeS3{}
	s := NewS3StorageWithClient(client, "avatars", "http://localhost:9000", "us-east-1")

	url, err := s.Save(context.Background(), "me.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), url))
	require.NotNil(t, client.deleted)
	assert.Equal(t, "avatars", aws.ToString(client.deleted.Bucket))
	assert.Equal(t, aws.ToString(client.input.Key), aws.ToString(client.deleted.Key))
}

func TestS3Storage_Delete_Error(t *testing.T) {
	s := NewS3StorageWithClient(&fakeS3{err: errors.New("access denied")}, "avatars", "", "eu-west-1")
	assert.Error(t, s.Delete(context.Background(), "https://avatars.s3.eu-west-1.amazonaws.com/profile-images/a.png"))
}

func TestNewS3Storage(t *testing.T) {
	s, err := NewS3Storage(context.Background(), S3Config{
		Region:       "us-east-1",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		BaseEndpoint: "http://localhost:9000",
		Bucket:       "avatars",
	})
	require.NoError(t, err)
	assert.NotNil(t, s.client)
	assert.Equal(t, "avatars", s.bucket)
}
