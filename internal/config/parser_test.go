package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseSimpleZoneAndOptions(t *testing.T) {
	dir := t.TempDir()
	named := writeFile(t, dir, "named.conf", `
options {
	directory "/var/named";
	allow-recursion { 10.0.0.0/8; 192.168.1.1; };
};

zone "example.com" {
	file "db.example.com";
};
`)
	writeFile(t, dir, "db.example.com", "; empty zone file\n")

	cfg, err := Parse(named, "/etc/bind", nil)
	require.NoError(t, err)

	require.Equal(t, "/var/named", cfg.Options.Directory)
	require.ElementsMatch(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Options.AllowRecursion)

	zone, ok := cfg.Zones["example.com"]
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "db.example.com"), zone.File)
}

func TestParseViewsAndACL(t *testing.T) {
	dir := t.TempDir()
	named := writeFile(t, dir, "named.conf", `
acl "trusted" { 10.0.0.0/8; };

view "internal" {
	match-clients { "trusted"; };
	zone "corp." {
		file "internal/db.corp";
	};
};

view "external" {
	match-clients { any; };
	zone "corp." {
		file "external/db.corp";
	};
};
`)
	writeFile(t, dir, "internal/db.corp", "")
	writeFile(t, dir, "external/db.corp", "")

	cfg, err := Parse(named, "/etc/bind", nil)
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"10.0.0.0/8"}, cfg.ACL["trusted"])
	require.Len(t, cfg.Views, 2)

	internal, ok := cfg.Views["internal"]
	require.True(t, ok)
	require.Equal(t, []string{"trusted"}, internal.MatchClients)
	require.Equal(t, filepath.Join(dir, "internal/db.corp"), internal.Zones["corp."].File)

	external := cfg.Views["external"]
	require.Equal(t, filepath.Join(dir, "external/db.corp"), external.Zones["corp."].File)
}

// TestParseAbsoluteIncludeRemappedThroughFakeRoot covers a
// top-level config with an absolute include path, remapped through
// --fake-root to the directory holding the top-level file.
func TestParseAbsoluteIncludeRemappedThroughFakeRoot(t *testing.T) {
	cfgDir := t.TempDir()
	named := writeFile(t, cfgDir, "named.conf", `include "/etc/bind/zones.conf";`)
	writeFile(t, cfgDir, "zones.conf", `
zone "example.net" {
	file "db.example.net";
};
`)
	writeFile(t, cfgDir, "db.example.net", "")

	cfg, err := Parse(named, "/etc/bind", nil)
	require.NoError(t, err)

	zone, ok := cfg.Zones["example.net"]
	require.True(t, ok)
	require.Equal(t, filepath.Join(cfgDir, "db.example.net"), zone.File)
}

func TestParseIncludeSplicesIncludedStatements(t *testing.T) {
	dir := t.TempDir()
	named := writeFile(t, dir, "named.conf", `
include "shared.conf";

zone "a.com" {
	file "db.a";
};
`)
	writeFile(t, dir, "shared.conf", `
acl "common" { 127.0.0.1; };
`)
	writeFile(t, dir, "db.a", "")

	cfg, err := Parse(named, "/etc/bind", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"127.0.0.1"}, cfg.ACL["common"])
}

func TestParseUnknownDirectiveIsWarningNotError(t *testing.T) {
	dir := t.TempDir()
	named := writeFile(t, dir, "named.conf", `
frobnicate "whatever";
zone "example.com" {
	file "db.example";
};
`)
	writeFile(t, dir, "db.example", "")

	cfg, err := Parse(named, "/etc/bind", nil)
	require.NoError(t, err)
	require.Contains(t, cfg.Zones, "example.com")
}

func TestParseCStyleAndLineComments(t *testing.T) {
	dir := t.TempDir()
	named := writeFile(t, dir, "named.conf", `
// a line comment
# a shell-style comment
/* a
   block comment */
zone "example.com" { file "db.example"; }; // trailing
`)
	writeFile(t, dir, "db.example", "")

	cfg, err := Parse(named, "/etc/bind", nil)
	require.NoError(t, err)
	require.Contains(t, cfg.Zones, "example.com")
}
