package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintBuildData(t *testing.T) {
	orig := buildVersion
	t.Cleanup(func() { buildVersion = orig })

	var buf bytes.Buffer
	buildVersion = "v1.2.3"
	PrintBuildData(&buf)

	require.Contains(t, buf.String(), "Build version: v1.2.3\n")
	require.Contains(t, buf.String(), "Build commit: N/A\n")
}
