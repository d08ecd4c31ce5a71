package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teletec/intercom-configurator/internal/domain"
)

const smallCatalog = `{
  "X1": {
    "Video": {
      "Modules": [{"Product Number": 1, "Name": "Main", "Budget Contribution": 12, "Is Required in Panel": 1}],
      "Receivers": [{"Product Number": 10, "Name": "Video Rx"}, {"Product Number": 11, "Name": "Shared Rx"}]
    },
    "Audio": {
      "Receivers": [{"Product Number": 11, "Name": "Shared Rx"}, {"Product Number": 12, "Name": "Audio Rx"}]
    },
    "PowerSupplies": [{"Product Number": 50, "Name": "Tech PSU"}]
  },
  "SystemAgnostic": {
    "PanelModules_General": [{"Product Number": 2, "Name": "Button", "Cost": 1}],
    "PowerSupplies": [{"Product Number": 50, "Name": "Shadowed PSU"}, {"Product Number": 51, "Name": "Shared PSU"}]
  }
}`

func TestLoadDefault(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, []domain.Technology{domain.TechnologyX1, domain.TechnologyIP, domain.Technology4G}, c.Technologies())
	assert.Equal(t, []domain.PanelType{domain.PanelTypeVideo, domain.PanelTypeAudio}, c.PanelTypes(domain.TechnologyX1))
	assert.Equal(t, []domain.PanelType{domain.PanelTypeAudio}, c.PanelTypes(domain.Technology4G))

	info := c.Info()
	assert.True(t, strings.HasPrefix(info.Source, "embedded:"))
	assert.Greater(t, info.Products, 30)

	// Every main module must classify as main at the catalog boundary
	for _, tech := range c.Technologies() {
		for _, pt := range c.PanelTypes(tech) {
			mains := c.MainModules(tech, pt)
			require.NotEmpty(t, mains, "%s/%s", tech, pt)
			for _, m := range mains {
				assert.True(t, m.IsMain(), m.Name)
			}
		}
	}
	for _, m := range c.AgnosticModules() {
		assert.False(t, m.IsMain(), m.Name)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(smallCatalog), "test")
	require.NoError(t, err)

	system := c.System(domain.TechnologyX1)
	require.NotNil(t, system)
	assert.Len(t, system.PanelTypes, 2)
	assert.Len(t, system.PowerSupplies, 1)
	assert.Nil(t, c.System(domain.TechnologyIP))
	assert.Equal(t, "test", c.Info().Source)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"no technologies", `{"SystemAgnostic": {}}`},
		{"bad product number", `{"X1": {"Video": {"Modules": [{"Product Number": "abc"}]}}}`},
		{"bad flag", `{"X1": {"Video": {"Modules": [{"Product Number": 1, "Is Required in Panel": "yes"}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "test")
			assert.Error(t, err)
		})
	}
}

func TestReceivers(t *testing.T) {
	c, err := Parse([]byte(smallCatalog), "test")
	require.NoError(t, err)

	video := c.Receivers(domain.TechnologyX1, domain.PanelTypeVideo)
	var names []string
	for _, r := range video {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Video Rx", "Shared Rx", "Audio Rx"}, names)

	audio := c.Receivers(domain.TechnologyX1, domain.PanelTypeAudio)
	assert.Len(t, audio, 2)

	assert.Empty(t, c.Receivers(domain.Technology4G, domain.PanelTypeAudio))
	assert.Empty(t, c.Receivers(domain.TechnologyIP, domain.PanelTypeVideo))

	_, ok := c.FindReceiver(domain.TechnologyX1, domain.PanelTypeAudio, 10)
	assert.False(t, ok, "video receiver is not offered for audio panels")
	r, ok := c.FindReceiver(domain.TechnologyX1, domain.PanelTypeVideo, 12)
	assert.True(t, ok)
	assert.Equal(t, "Audio Rx", r.Name)
}

func TestFindModule(t *testing.T) {
	c, err := Parse([]byte(smallCatalog), "test")
	require.NoError(t, err)

	m, ok := c.FindModule(domain.TechnologyX1, domain.PanelTypeVideo, 1, "Main")
	require.True(t, ok)
	assert.True(t, m.IsMain())

	m, ok = c.FindModule(domain.TechnologyX1, domain.PanelTypeVideo, 2, "Button")
	require.True(t, ok)
	assert.False(t, m.IsMain())

	_, ok = c.FindModule(domain.TechnologyX1, domain.PanelTypeVideo, 2, "Other name")
	assert.False(t, ok, "lookup keys on number and name")

	_, ok = c.FindModule(domain.TechnologyX1, domain.PanelTypeAudio, 1, "Main")
	assert.False(t, ok)
}

func TestFindModule_4GUsesAudio(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	m, ok := c.FindModule(domain.Technology4G, domain.PanelTypeVideo, 118801, "4G Audiomodul")
	require.True(t, ok)
	assert.Equal(t, "Audio 4G", m.Category)
}

func TestPowerSupply(t *testing.T) {
	c, err := Parse([]byte(smallCatalog), "test")
	require.NoError(t, err)

	p, ok := c.PowerSupply(domain.TechnologyX1, 50)
	require.True(t, ok)
	assert.Equal(t, "Tech PSU", p.Name, "technology list wins")

	p, ok = c.PowerSupply(domain.TechnologyX1, 51)
	require.True(t, ok)
	assert.Equal(t, "Shared PSU", p.Name)

	p, ok = c.PowerSupply(domain.Technology4G, 51)
	require.True(t, ok, "unknown technology still searches agnostic supplies")
	assert.Equal(t, "Shared PSU", p.Name)

	_, ok = c.PowerSupply(domain.TechnologyX1, 99)
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Info().Source)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	first, err := Parse([]byte(smallCatalog), "first")
	require.NoError(t, err)
	second, err := LoadDefault()
	require.NoError(t, err)

	s := NewStore(first)
	assert.Same(t, first, s.Current())

	prev := s.Replace(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, s.Current())
}
