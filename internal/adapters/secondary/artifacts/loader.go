package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"price-verification-service/internal/config"
	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
	"price-verification-service/internal/inference"
)

const (
	DefaultRawExt      = ".cbm"
	DefaultPipelineExt = ".pipeline"
)

// Load scans dir (non-recursively) and decodes every model artifact in it.
// The filename stem is the goods code and the extension selects the kind.
// Files with other extensions and subdirectories are ignored.
//
// A bad artifact aborts the scan with an *domain.ArtifactLoadError unless
// cfg.SkipInvalid is set, in which case it is logged and skipped.
func Load(cfg *config.ArtifactsConfig) (ports.ArtifactSet, error) {
	set := ports.ArtifactSet{
		Raw:       make(map[string]ports.ArrayPredictor),
		Pipelines: make(map[string]ports.LabeledPredictor),
	}

	rawExt, pipelineExt := cfg.RawExt, cfg.PipelineExt
	if rawExt == "" {
		rawExt = DefaultRawExt
	}
	if pipelineExt == "" {
		pipelineExt = DefaultPipelineExt
	}
	if rawExt == pipelineExt {
		return set, fmt.Errorf("raw and pipeline artifacts share extension %q", rawExt)
	}

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return set, &domain.ArtifactLoadError{File: cfg.Dir, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(name)
		if ext != rawExt && ext != pipelineExt {
			log.WithField("file", name).Debug("ignoring non-artifact file")
			continue
		}
		code := strings.TrimSuffix(name, ext)

		err := loadOne(&set, filepath.Join(cfg.Dir, name), code, ext == pipelineExt)
		if err == nil {
			continue
		}

		loadErr := &domain.ArtifactLoadError{File: name, Err: err}
		if !cfg.SkipInvalid {
			return set, loadErr
		}
		log.WithError(loadErr).WithField("file", name).Warn("skipping invalid model artifact")
	}

	log.WithFields(log.Fields{
		"dir":       cfg.Dir,
		"raw":       len(set.Raw),
		"pipelines": len(set.Pipelines),
	}).Info("model artifacts loaded")

	return set, nil
}

func loadOne(set *ports.ArtifactSet, path, code string, pipeline bool) error {
	if code == "" {
		return errors.New("artifact name has no goods code")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if pipeline {
		m, err := inference.DecodePipelineModel(f)
		if err != nil {
			return err
		}
		set.Pipelines[code] = m
		return nil
	}

	m, err := inference.DecodeRawModel(f)
	if err != nil {
		return err
	}
	set.Raw[code] = m
	return nil
}
