// Package discovery turns a search topic into candidate URLs for the web
// scrape path.
package discovery

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Provider yields up to max candidate URLs for a topic.
type Provider interface {
	Discover(topic string, max int) ([]string, error)
}

// StaticProvider serves a fixed URL list, ignoring the topic.
type StaticProvider struct {
	urls []string
}

func NewStaticProvider(urls []string) *StaticProvider {
	return &StaticProvider{urls: urls}
}

func (p *StaticProvider) Discover(topic string, max int) ([]string, error) {
	urls := p.urls
	if max > 0 && len(urls) > max {
		urls = urls[:max]
	}
	out := make([]string, len(urls))
	copy(out, urls)
	return out, nil
}

// FileProvider reads one URL per line from a file. Blank lines and lines
// starting with # are skipped.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Discover(topic string, max int) ([]string, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening url file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
		if max > 0 && len(urls) >= max {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading url file: %w", err)
	}
	return urls, nil
}
