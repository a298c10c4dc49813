package puzzledb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/matzehuels/puzzlesheet/pkg/cache"
	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/observability"
)

// DefaultSource is the official Lichess puzzle dump.
const DefaultSource = "https://database.lichess.org/lichess_db_puzzle.csv.zst"

// defaultFileName is used when a source URL has no usable file name.
const defaultFileName = "lichess_db_puzzle.csv"

// ObjectGetter is the part of the S3 API Fetch needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type fetchConfig struct {
	force   bool
	client  *http.Client
	s3      ObjectGetter
	backoff cache.Backoff
}

// FetchOption configures [Fetch].
type FetchOption func(*fetchConfig)

// WithForce downloads the source again even if a local copy exists.
func WithForce(force bool) FetchOption {
	return func(c *fetchConfig) { c.force = force }
}

// WithHTTPClient sets the client used for http and https sources.
func WithHTTPClient(client *http.Client) FetchOption {
	return func(c *fetchConfig) { c.client = client }
}

// WithS3Client sets the client used for s3 sources. By default one is
// built from the standard AWS configuration chain.
func WithS3Client(g ObjectGetter) FetchOption {
	return func(c *fetchConfig) { c.s3 = g }
}

// WithBackoff sets the retry policy for http downloads.
func WithBackoff(b cache.Backoff) FetchOption {
	return func(c *fetchConfig) { c.backoff = b }
}

// Fetch resolves source to a local file. Local paths are returned as is
// after checking they exist. http(s):// and s3://bucket/key sources are
// downloaded into dir, unless a copy is already there.
func Fetch(ctx context.Context, source, dir string, opts ...FetchOption) (string, error) {
	cfg := fetchConfig{
		client:  &http.Client{Timeout: 10 * time.Minute},
		backoff: cache.DefaultBackoff,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	source = strings.TrimSpace(source)
	if source == "" {
		return "", errors.New(errors.ErrCodeDatabase, "no puzzle database configured (set puzzle_db or run psg db fetch)")
	}

	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "s3") {
		return localSource(source)
	}

	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		name = defaultFileName
	}
	dst := filepath.Join(dir, name)
	if !cfg.force {
		if info, err := os.Stat(dst); err == nil && info.Size() > 0 {
			return dst, nil
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeOutputWrite, err, "create %s", dir)
	}

	start := time.Now()
	var n int64
	switch u.Scheme {
	case "s3":
		n, err = fetchS3(ctx, cfg, u, dst)
	default:
		n, err = fetchHTTP(ctx, cfg, source, dst)
	}
	observability.Database().OnFetch(ctx, source, n, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return dst, nil
}

func localSource(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDatabase, err, "resolve %s", p)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDatabase, err, "puzzle database %s", p)
	}
	if info.IsDir() {
		return "", errors.New(errors.ErrCodeDatabase, "puzzle database %s is a directory", p)
	}
	return abs, nil
}

func fetchHTTP(ctx context.Context, cfg fetchConfig, source, dst string) (int64, error) {
	var n int64
	err := cache.Retry(ctx, cfg.backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return err
		}
		resp, err := cfg.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrTransient, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return cache.Retryable(fmt.Errorf("%w: %s", cache.ErrTransient, resp.Status))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		return fsutil.Write(dst, 0o644, func(w io.Writer) error {
			n, err = io.Copy(w, resp.Body)
			return err
		})
	})
	if err != nil {
		return n, errors.Wrap(errors.ErrCodeNetwork, err, "download %s", source)
	}
	return n, nil
}

func fetchS3(ctx context.Context, cfg fetchConfig, u *url.URL, dst string) (int64, error) {
	bucket, key := u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "s3 source must look like s3://bucket/key, got %q", u.String())
	}

	client := cfg.s3
	if client == nil {
		awsCfg, err := awscfg.LoadDefaultConfig(ctx)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeNetwork, err, "load AWS config")
		}
		client = s3.NewFromConfig(awsCfg)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "get s3://%s/%s", bucket, key)
	}
	defer out.Body.Close()

	var n int64
	err = fsutil.Write(dst, 0o644, func(w io.Writer) error {
		n, err = io.Copy(w, out.Body)
		return err
	})
	if err != nil {
		return n, errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", dst)
	}
	return n, nil
}
