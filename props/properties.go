package props

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"offerwall-sdk/internal/storage"
)

// Publisher is one entry of the publishers file. APIKey may reference an
// environment variable, e.g. "${PUB_ACME_KEY}".
type Publisher struct {
	ID              string `yaml:"id"`
	APIKey          string `yaml:"apiKey"`
	APIDomain       string `yaml:"apiDomain"`
	OfferwallDomain string `yaml:"offerwallDomain"`
	Disabled        bool   `yaml:"disabled"`
}

type publishersFile struct {
	Publishers []Publisher `yaml:"publishers"`
}

// FileLoader reads publishers from a YAML file on every load so edits are
// picked up on refresh.
type FileLoader struct {
	Path string
}

func (l FileLoader) LoadPublishers(_ context.Context) ([]storage.PublisherRow, error) {
	return LoadPublishers(l.Path)
}

func LoadPublishers(path string) ([]storage.PublisherRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open publishers file %s: %w", path, err)
	}
	defer f.Close()

	var pf publishersFile
	if err := yaml.NewDecoder(f).Decode(&pf); err != nil {
		return nil, fmt.Errorf("failed to decode publishers file %s: %w", path, err)
	}

	out := make([]storage.PublisherRow, 0, len(pf.Publishers))
	for _, p := range pf.Publishers {
		if p.Disabled {
			continue
		}
		out = append(out, storage.PublisherRow{
			ID:              p.ID,
			APIKey:          os.ExpandEnv(p.APIKey),
			APIDomain:       p.APIDomain,
			OfferwallDomain: p.OfferwallDomain,
		})
	}
	return out, nil
}
