package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annap-test/Berlin-App/internal/model"
)

func TestReadableHeader(t *testing.T) {
	got := ReadableHeader([]string{"district_id", "green_share", "custom_column"})
	assert.Equal(t, []string{"District ID", "Green share (0–1)", "custom_column"}, got)
}

func TestWriteReadableCSV(t *testing.T) {
	score := 77.0
	rows := []model.NeighborhoodWideRow{
		{DistrictID: "01", District: "Mitte", Neighborhood: "Alpha", AreaKm2: 1.5, MobilityScore: &score, MobilityLabel: "well-connected"},
	}
	path := filepath.Join(t.TempDir(), "readable.csv")
	require.NoError(t, WriteReadableCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.SplitN(string(data), "\n", 2)
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "District ID")
	assert.Contains(t, lines[0], "Mobility score (0–100)")
	assert.NotContains(t, lines[0], "district_id")
	// Data rows keep canonical values.
	assert.Contains(t, lines[1], "well-connected")
	assert.Contains(t, lines[1], "77")
}
