package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mbrinkhoff/pontos/httpclient"
	"github.com/mbrinkhoff/pontos/logger"
	"github.com/mbrinkhoff/pontos/validation"
)

// ArtifactsService handles GitHub Actions artifacts.
type ArtifactsService struct {
	client *Client
}

// Get returns a single artifact.
func (s *ArtifactsService) Get(ctx context.Context, repo Repo, id int64) (Artifact, error) {
	if err := validateIDs(repo, "artifact_id", id); err != nil {
		return Artifact{}, err
	}
	return get[Artifact](ctx, s.client, artifactPath(repo, id), nil)
}

// List lists all artifacts of a repository.
func (s *ArtifactsService) List(repo Repo) *Pager[Artifact] {
	if err := repo.Validate(); err != nil {
		return failedPager[Artifact](err)
	}
	return newPager[Artifact](s.client, repo.path("actions", "artifacts"), "artifacts", nil)
}

// ListForRun lists the artifacts produced by a workflow run.
func (s *ArtifactsService) ListForRun(repo Repo, runID int64) *Pager[Artifact] {
	if err := validateIDs(repo, "run_id", runID); err != nil {
		return failedPager[Artifact](err)
	}
	path := repo.path("actions", "runs", strconv.FormatInt(runID, 10), "artifacts")
	return newPager[Artifact](s.client, path, "artifacts", nil)
}

// Delete deletes an artifact.
func (s *ArtifactsService) Delete(ctx context.Context, repo Repo, id int64) error {
	if err := validateIDs(repo, "artifact_id", id); err != nil {
		return err
	}
	return s.client.exec(ctx, http.MethodDelete, artifactPath(repo, id), nil)
}

// Download streams the zip archive of an artifact. The caller must close
// the returned Download.
func (s *ArtifactsService) Download(ctx context.Context, repo Repo, id int64) (*httpclient.Download, error) {
	if err := validateIDs(repo, "artifact_id", id); err != nil {
		return nil, err
	}
	stream, err := s.client.transport.DoStream(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   artifactPath(repo, id) + "/zip",
	})
	if err != nil {
		return nil, err
	}
	return httpclient.NewDownload(stream, 0), nil
}

// DownloadToFile downloads the zip archive of an artifact to dest and
// returns the number of bytes written. The file is only created once the
// download has completed.
func (s *ArtifactsService) DownloadToFile(ctx context.Context, repo Repo, id int64, dest string) (int64, error) {
	dl, err := s.Download(ctx, repo, id)
	if err != nil {
		return 0, err
	}
	defer func() { _ = dl.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".artifact-*.zip")
	if err != nil {
		return 0, fmt.Errorf("github: create download file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	log := s.client.log.WithFields(logger.Fields("artifact_id", id, "dest", dest))
	for {
		chunk, err := dl.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = tmp.Close()
			return dl.Received(), err
		}
		if _, err := tmp.Write(chunk.Data); err != nil {
			_ = tmp.Close()
			return dl.Received(), fmt.Errorf("github: write download file: %w", err)
		}
		if chunk.Progress != nil {
			log.Debug("download progress", logger.Fields("progress", *chunk.Progress))
		}
	}
	if err := tmp.Close(); err != nil {
		return dl.Received(), fmt.Errorf("github: close download file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return dl.Received(), fmt.Errorf("github: move download file: %w", err)
	}

	if s.client.metrics != nil {
		s.client.metrics.RecordDownload(ctx, dl.Received())
	}
	log.Info("artifact downloaded", logger.Fields("bytes", dl.Received()))
	return dl.Received(), nil
}

func artifactPath(repo Repo, id int64) string {
	return repo.path("actions", "artifacts", strconv.FormatInt(id, 10))
}

// validateIDs checks a repository and a positive numeric id.
func validateIDs(repo Repo, field string, id int64) error {
	if err := repo.Validate(); err != nil {
		return err
	}
	if err := validation.New().Positive(field, id).Validate(); err != nil {
		return err
	}
	return nil
}
