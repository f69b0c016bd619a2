package topology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBasicLine(t *testing.T) {
	src := strings.NewReader("a 0.5 b 0.02\nb 0.5 a 0.02\n")
	spec, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, spec.Miners, 2)
	require.Equal(t, "a", spec.Miners[0].Name)
	require.Equal(t, 0.5, spec.Miners[0].Hashrate)
	require.Equal(t, []PeerSpec{{Name: "b", Delay: 0.02}}, spec.Miners[0].Peers)
}

func TestParseIgnoresBlankAndCommentLines(t *testing.T) {
	src := strings.NewReader("# topology\n\na 1.0\n")
	spec, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, spec.Miners, 1)
}

func TestParseRejectsDuplicateName(t *testing.T) {
	src := strings.NewReader("a 0.5\na 0.5\n")
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParseRejectsUnknownPeer(t *testing.T) {
	src := strings.NewReader("a 1.0 ghost 0.02\n")
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParseRejectsUnpairedPeerDelay(t *testing.T) {
	src := strings.NewReader("a 1.0 b\n")
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParseRejectsEmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
}
