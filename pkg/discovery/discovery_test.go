package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider([]string{"https://a.com", "https://b.com", "https://c.com"})

	urls, err := p.Discover("anything", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, urls)

	all, err := p.Discover("anything", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://a.com\n\n# comment\nhttps://b.com\nhttps://c.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	urls, err := NewFileProvider(path).Discover("topic", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, urls)
}

func TestFileProviderMissingFile(t *testing.T) {
	_, err := NewFileProvider("/nonexistent/urls.txt").Discover("topic", 10)
	assert.Error(t, err)
}
