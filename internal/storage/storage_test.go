package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		filename string
		mime     string
		pattern  string
	}{
		{"photo.JPG", "image/jpeg", `^[0-9a-f-]{36}\.jpg$`},
		{"photo.jpeg", "image/jpeg", `^[0-9a-f-]{36}\.jpeg$`},
		{"lehenga.final.png", "image/png", `^[0-9a-f-]{36}\.png$`},
		{"noext", "image/webp", `^[0-9a-f-]{36}\.webp$`},
		{"x.html", "image/gif", `^[0-9a-f-]{36}\.gif$`},
		{"photo.png", "image/jpeg", `^[0-9a-f-]{36}\.jpg$`},
		{"notes.txt", "text/plain; charset=utf-8", `^[0-9a-f-]{36}\.bin$`},
		{"", "", `^[0-9a-f-]{36}\.bin$`},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), ObjectName(tt.filename, tt.mime))
		})
	}

	assert.NotEqual(t, ObjectName("a.jpg", "image/jpeg"), ObjectName("a.jpg", "image/jpeg"), "names must not collide")
}

func TestLocalBucketUpload(t *testing.T) {
	dir := t.TempDir()
	b, err := NewLocalBucket(dir, "/uploads")
	require.NoError(t, err)

	err = b.Upload(context.Background(), "abc.jpg", []byte("data"), "image/jpeg")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
	assert.Equal(t, "/uploads/abc.jpg", b.PublicURL("abc.jpg"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestLocalBucketRejectsPaths(t *testing.T) {
	b, err := NewLocalBucket(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.jpg", "sub/dir.jpg", ".hidden"} {
		assert.Error(t, b.Upload(context.Background(), name, []byte("x"), ""), name)
	}
}

func TestLocalBucketCancelled(t *testing.T) {
	b, err := NewLocalBucket(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Upload(ctx, "a.jpg", []byte("x"), ""), context.Canceled)
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestS3BucketUpload(t *testing.T) {
	client := new(mockS3)
	b := newS3Bucket(client, S3Config{Bucket: "couture", Region: "ap-south-1", Prefix: "product-images/"}, zerolog.Nop())

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "couture" &&
			aws.ToString(in.Key) == "product-images/a.png" &&
			aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, b.Upload(context.Background(), "a.png", []byte("png"), "image/png"))
	client.AssertExpectations(t)

	assert.Equal(t, "https://couture.s3.ap-south-1.amazonaws.com/product-images/a.png", b.PublicURL("a.png"))
}

func TestS3BucketUploadError(t *testing.T) {
	client := new(mockS3)
	b := newS3Bucket(client, S3Config{Bucket: "couture"}, zerolog.Nop())

	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

	err := b.Upload(context.Background(), "a.png", []byte("png"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3BucketPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{
			name: "public url",
			cfg:  S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/", Prefix: "p/"},
			want: "https://cdn.example.com/p/x.jpg",
		},
		{
			name: "custom endpoint",
			cfg:  S3Config{Bucket: "b", Endpoint: "http://localhost:9000"},
			want: "http://localhost:9000/b/x.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newS3Bucket(new(mockS3), tt.cfg, zerolog.Nop())
			assert.Equal(t, tt.want, b.PublicURL("x.jpg"))
		})
	}
}
