package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bsa/internal/config"
)

// TestBuildDBKeysZoneGroupsByFileAndOrigin covers two views sharing one
// zone file but declaring different origins: a legal BIND pattern that
// must not collapse into a single group, or the second zone's records
// would be resolved (and its configs attached) under the first zone's
// origin.
func TestBuildDBKeysZoneGroupsByFileAndOrigin(t *testing.T) {
	dir := t.TempDir()
	zoneFile := filepath.Join(dir, "db.shared")
	require.NoError(t, os.WriteFile(zoneFile, []byte("www A 1.2.3.4\n"), 0o644))

	root := config.NewConfig()

	internal := &config.Config{Name: "internal", Parent: root, Views: map[string]*config.Config{}, Zones: map[string]*config.Zone{
		"one.example.": {Origin: "one.example.", File: zoneFile},
	}}
	external := &config.Config{Name: "external", Parent: root, Views: map[string]*config.Config{}, Zones: map[string]*config.Zone{
		"two.example.": {Origin: "two.example.", File: zoneFile},
	}}
	root.Views["internal"] = internal
	root.Views["external"] = external

	db, err := BuildDB(root, dir, nil, nil)
	require.NoError(t, err)

	zones := db.Zones()
	require.Len(t, zones, 2)

	origins := map[string]bool{}
	for _, z := range zones {
		origins[z.Zone.Origin] = true
		require.Len(t, z.Records, 1)
	}
	require.True(t, origins["one.example."])
	require.True(t, origins["two.example."])

	oneHits := db.Query("www.one.example.", AnyRecord(), AnyView(), false)
	require.Len(t, oneHits, 1)
	twoHits := db.Query("www.two.example.", AnyRecord(), AnyView(), false)
	require.Len(t, twoHits, 1)
}
