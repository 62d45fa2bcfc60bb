package deploy

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wayfinder-dev/wayfinder/internal/config"
	wferrors "github.com/wayfinder-dev/wayfinder/internal/errors"
)

type capturedObject struct {
	Bucket       string
	ContentType  string
	CacheControl string
	Body         string
}

// fakePutter records every PutObject call.
type fakePutter struct {
	objects map[string]capturedObject
	fail    error
}

func newFakePutter() *fakePutter {
	return &fakePutter{objects: make(map[string]capturedObject)}
}

func (f *fakePutter) PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*input.Key] = capturedObject{
		Bucket:       *input.Bucket,
		ContentType:  *input.ContentType,
		CacheControl: *input.CacheControl,
		Body:         string(body),
	}
	return &s3.PutObjectOutput{}, nil
}

func makeDist(t *testing.T) string {
	t.Helper()
	dist := t.TempDir()
	files := map[string]string{
		"index.html":       "<html></html>",
		"app.wasm":         "\x00asm",
		"assets/style.css": "body{}",
	}
	for name, content := range files {
		path := filepath.Join(dist, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dist
}

func TestDeployUploadsAllFiles(t *testing.T) {
	putter := newFakePutter()
	d, err := New(putter, config.DeployConfig{Bucket: "site"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := d.Deploy(context.Background(), makeDist(t))
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if result.Uploaded != 3 {
		t.Errorf("Uploaded = %d, want 3", result.Uploaded)
	}
	if result.Bytes == 0 {
		t.Error("Bytes = 0")
	}

	var keys []string
	for k := range putter.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	want := []string{"app.wasm", "assets/style.css", "index.html"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys = %v, want %v", keys, want)
		}
	}

	if got := putter.objects["index.html"].Bucket; got != "site" {
		t.Errorf("Bucket = %q", got)
	}
}

func TestDeployPrefix(t *testing.T) {
	putter := newFakePutter()
	d, err := New(putter, config.DeployConfig{Bucket: "site", Prefix: "/v2/"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := d.Deploy(context.Background(), makeDist(t)); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if _, ok := putter.objects["v2/index.html"]; !ok {
		t.Errorf("prefix not applied, keys: %v", putter.objects)
	}
}

func TestDeployContentTypesAndCaching(t *testing.T) {
	putter := newFakePutter()
	d, _ := New(putter, config.DeployConfig{Bucket: "site"}, nil)

	if _, err := d.Deploy(context.Background(), makeDist(t)); err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	html := putter.objects["index.html"]
	if html.CacheControl != "no-cache" {
		t.Errorf("index.html CacheControl = %q", html.CacheControl)
	}

	wasm := putter.objects["app.wasm"]
	if wasm.ContentType != "application/wasm" {
		t.Errorf("app.wasm ContentType = %q", wasm.ContentType)
	}
	if wasm.CacheControl != "public, max-age=31536000, immutable" {
		t.Errorf("app.wasm CacheControl = %q", wasm.CacheControl)
	}
}

func TestDeployMissingDist(t *testing.T) {
	d, _ := New(newFakePutter(), config.DeployConfig{Bucket: "site"}, nil)

	_, err := d.Deploy(context.Background(), filepath.Join(t.TempDir(), "nope"))
	var we *wferrors.WayfinderError
	if !stderrors.As(err, &we) || we.Code != "E200" {
		t.Errorf("err = %v, want E200", err)
	}
}

func TestDeployUploadFailure(t *testing.T) {
	putter := newFakePutter()
	putter.fail = stderrors.New("access denied")
	d, _ := New(putter, config.DeployConfig{Bucket: "site"}, nil)

	_, err := d.Deploy(context.Background(), makeDist(t))
	var we *wferrors.WayfinderError
	if !stderrors.As(err, &we) || we.Code != "E301" {
		t.Errorf("err = %v, want E301", err)
	}
	if !stderrors.Is(err, putter.fail) {
		t.Error("underlying cause lost")
	}
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(newFakePutter(), config.DeployConfig{}, nil)
	var we *wferrors.WayfinderError
	if !stderrors.As(err, &we) || we.Code != "E300" {
		t.Errorf("err = %v, want E300", err)
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := map[string]string{
		"a/app.wasm": "application/wasm",
		"a/app.js":   "application/javascript",
		"a/blob":     "application/octet-stream",
	}
	for path, want := range tests {
		if got := contentTypeFor(path); got != want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", path, got, want)
		}
	}
}
