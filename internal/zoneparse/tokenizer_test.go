package zoneparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeZoneBasicLine(t *testing.T) {
	lines := tokenizeZone("www A 1.1.1.1\n")
	require.Len(t, lines, 1)
	require.Equal(t, []string{"www", "A", "1.1.1.1"}, lines[0].tokens)
	require.Equal(t, 1, lines[0].line)
}

func TestTokenizeZoneFirstColumnBlankInheritsOwner(t *testing.T) {
	lines := tokenizeZone("www A 1.1.1.1\n  A 2.2.2.2\n")
	require.Len(t, lines, 2)
	require.Equal(t, []string{"", "A", "2.2.2.2"}, lines[1].tokens)
}

func TestTokenizeZoneSemicolonComment(t *testing.T) {
	lines := tokenizeZone("www A 1.1.1.1 ; trailing comment\nftp A 2.2.2.2\n")
	require.Len(t, lines, 2)
	require.Equal(t, []string{"www", "A", "1.1.1.1"}, lines[0].tokens)
}

func TestTokenizeZoneQuotedStringPreservesWhitespace(t *testing.T) {
	lines := tokenizeZone(`www TXT "hello world"` + "\n")
	require.Len(t, lines, 1)
	require.Equal(t, []string{"www", "TXT", "hello world"}, lines[0].tokens)
}

func TestTokenizeZoneEscapedCharacterIsLiteral(t *testing.T) {
	lines := tokenizeZone(`www TXT "a\;b"` + "\n")
	require.Len(t, lines, 1)
	require.Equal(t, []string{"www", "TXT", "a;b"}, lines[0].tokens)
}

func TestTokenizeZoneParenthesesSpanMultipleLines(t *testing.T) {
	src := "@ SOA a. b. (\n  1\n  2\n  3\n  4\n  5\n)\n"
	lines := tokenizeZone(src)
	require.Len(t, lines, 1)
	require.Equal(t, []string{"@", "SOA", "a.", "b.", "1", "2", "3", "4", "5"}, lines[0].tokens)
}

func TestTokenizeZoneLineNumberTracksFirstToken(t *testing.T) {
	src := "\n\nwww A 1.1.1.1\n"
	lines := tokenizeZone(src)
	require.Len(t, lines, 1)
	require.Equal(t, 3, lines[0].line)
}
