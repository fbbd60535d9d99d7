package collector

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactscraper/pkg/models"
)

// fakeSource serves scripted pages of entries, one page per scroll.
type fakeSource struct {
	pages   [][]VisibleEntry
	cursor  int
	scrolls int
	listErr error
}

func (f *fakeSource) ScrollForward() error {
	f.scrolls++
	if f.cursor < len(f.pages)-1 {
		f.cursor++
	}
	return nil
}

func (f *fakeSource) ListVisibleEntries() ([]VisibleEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.pages[f.cursor], nil
}

func entry(handle string) VisibleEntry {
	return VisibleEntry{Href: "/" + handle + "/", DisplayName: handle}
}

func TestCollectDeduplicatesAcrossScrolls(t *testing.T) {
	source := &fakeSource{pages: [][]VisibleEntry{
		{entry("alice"), entry("bob")},
		{entry("bob"), entry("carol")},
		{entry("carol")},
		{entry("carol")},
		{entry("carol")},
	}}

	records, err := New(source, 100, nil).Collect()
	require.NoError(t, err)

	var handles []string
	for _, r := range records {
		handles = append(handles, r.Username)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, handles)
}

func TestCollectStopsAfterStableIterations(t *testing.T) {
	// One page that never changes: the run must terminate without the
	// item cap being reached.
	source := &fakeSource{pages: [][]VisibleEntry{
		{entry("alice")},
	}}

	records, err := New(source, 100, nil).Collect()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 3, source.scrolls)
}

func TestCollectHonorsItemCap(t *testing.T) {
	var page []VisibleEntry
	for i := 0; i < 20; i++ {
		page = append(page, entry(fmt.Sprintf("user%02d", i)))
	}
	source := &fakeSource{pages: [][]VisibleEntry{page}}

	records, err := New(source, 5, nil).Collect()
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestCollectTerminatesOnInfiniteDuplicates(t *testing.T) {
	// The source keeps returning the same entries forever; the stability
	// counter must end the run.
	source := &fakeSource{pages: [][]VisibleEntry{
		{entry("alice"), entry("bob")},
	}}

	records, err := New(source, 50, nil).Collect()
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.LessOrEqual(t, source.scrolls, 4)
}

func TestCollectSkipsNonProfileLinks(t *testing.T) {
	source := &fakeSource{pages: [][]VisibleEntry{
		{
			{Href: "/p/Cxyz123/"},
			{Href: "/reel/Cabc456/"},
			{Href: ""},
			entry("dana"),
		},
	}}

	records, err := New(source, 100, nil).Collect()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "dana", records[0].Username)
}

func TestCollectExtractsContactInfoFromBio(t *testing.T) {
	source := &fakeSource{pages: [][]VisibleEntry{
		{{
			Href:        "/eve/",
			DisplayName: "Eve Example",
			Bio:         "Photographer. Contact: eve@studio.com\nBased in Lisbon",
		}},
	}}

	records, err := New(source, 10, nil).Collect()
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "eve", r.Username)
	assert.Equal(t, "Eve Example", r.FullName)
	assert.Equal(t, []string{"eve@studio.com"}, r.Emails)
	assert.NotEmpty(t, r.Contact)
	assert.NotEmpty(t, r.Location)
	assert.Equal(t, "https://www.instagram.com/eve/", r.ProfileURL)
	assert.Equal(t, models.StatusSuccess, r.Status)
}

func TestCollectDefaultsNameToIdentity(t *testing.T) {
	source := &fakeSource{pages: [][]VisibleEntry{
		{{Href: "/ghostwriter/", DisplayName: "  "}},
	}}

	records, err := New(source, 10, nil).Collect()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ghostwriter", records[0].FullName)
}

func TestBuildRecordPopulatesResponseTime(t *testing.T) {
	c := New(&fakeSource{pages: [][]VisibleEntry{{}}}, 10, nil)
	start := time.Now().Add(-40 * time.Millisecond)

	record := c.buildRecord("zed", VisibleEntry{Href: "/zed/"}, start)

	assert.GreaterOrEqual(t, record.ResponseTimeMs, int64(40))
}

func TestCollectPropagatesListError(t *testing.T) {
	source := &fakeSource{
		pages:   [][]VisibleEntry{{entry("alice")}},
		listErr: errors.New("session closed"),
	}

	_, err := New(source, 10, nil).Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session closed")
}

func TestIdentityFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/alice/", "alice"},
		{"https://www.instagram.com/bob/", "bob"},
		{"/carol/?hl=en", "carol"},
		{"/p/Cxyz/", ""},
		{"/reel/Cxyz/", ""},
		{"/explore/tags/food/", ""},
		{"/", ""},
		{"", ""},
		{"/dave/followers/", "dave"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IdentityFromHref(tt.href), "href %q", tt.href)
	}
}
