package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type uploadedObject struct {
	Key         string
	ContentType string
	Body        string
}

type fakeS3Client struct {
	objects []uploadedObject
	err     error
}

func (f *fakeS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects = append(f.objects, uploadedObject{
		Key:         *params.Key,
		ContentType: *params.ContentType,
		Body:        string(body),
	})
	return &s3.PutObjectOutput{}, nil
}

func writeOutputFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"index.html":           "<html>home</html>",
		"blog/post/index.html": "<html>post</html>",
		"assets/css/site.css":  "body{}",
		"rss.xml":              `<?xml version="1.0"?><rss/>`,
	}
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestS3PublisherUploadsTree(t *testing.T) {
	client := &fakeS3Client{}
	publisher := newS3PublisherWithClient(S3Config{Bucket: "my-site"}, client, nil)

	result, err := publisher.Publish(context.Background(), writeOutputFixture(t))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if result.Files != 4 {
		t.Fatalf("expected 4 files, got %d", result.Files)
	}
	if result.Bytes == 0 {
		t.Fatal("expected byte count")
	}
	if result.Target != "s3://my-site" {
		t.Fatalf("unexpected target %q", result.Target)
	}

	byKey := map[string]uploadedObject{}
	for _, object := range client.objects {
		byKey[object.Key] = object
	}
	home, ok := byKey["index.html"]
	if !ok {
		t.Fatalf("expected index.html upload, got %+v", byKey)
	}
	if !strings.Contains(home.ContentType, "text/html") {
		t.Fatalf("expected html content type, got %q", home.ContentType)
	}
	css, ok := byKey["assets/css/site.css"]
	if !ok || !strings.Contains(css.ContentType, "text/css") {
		t.Fatalf("expected css upload with css content type, got %+v", css)
	}
	if _, ok := byKey["blog/post/index.html"]; !ok {
		t.Fatal("expected nested page upload")
	}
}

func TestS3PublisherKeyPrefix(t *testing.T) {
	client := &fakeS3Client{}
	publisher := newS3PublisherWithClient(S3Config{Bucket: "my-site", Prefix: "/site/"}, client, nil)

	if _, err := publisher.Publish(context.Background(), writeOutputFixture(t)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	for _, object := range client.objects {
		if !strings.HasPrefix(object.Key, "site/") {
			t.Fatalf("expected prefixed key, got %q", object.Key)
		}
	}
}

func TestS3PublisherUploadFailure(t *testing.T) {
	client := &fakeS3Client{err: errors.New("denied")}
	publisher := newS3PublisherWithClient(S3Config{Bucket: "my-site"}, client, nil)

	if _, err := publisher.Publish(context.Background(), writeOutputFixture(t)); err == nil {
		t.Fatal("expected upload failure")
	}
}

func TestS3PublisherRequiresDir(t *testing.T) {
	publisher := newS3PublisherWithClient(S3Config{Bucket: "my-site"}, &fakeS3Client{}, nil)
	if _, err := publisher.Publish(context.Background(), ""); !errors.Is(err, ErrDirRequired) {
		t.Fatalf("expected dir error, got %v", err)
	}
}

func TestNoopPublisher(t *testing.T) {
	result, err := NoopPublisher{}.Publish(context.Background(), "public")
	if err != nil {
		t.Fatalf("noop publish: %v", err)
	}
	if result.Files != 0 || result.Target != "noop" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestDetectContentType(t *testing.T) {
	cases := map[string]string{
		"font.woff2":  "font/woff2",
		"favicon.ico": "image/x-icon",
		"data.bin":    "application/octet-stream",
	}
	for file, want := range cases {
		if got := detectContentType(file); got != want {
			t.Fatalf("detectContentType(%q) = %q, want %q", file, got, want)
		}
	}
}
