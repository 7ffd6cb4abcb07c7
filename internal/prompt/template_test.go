package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTemplate_Render(t *testing.T) {
	req := require.New(t)

	out, err := Regenerate.Render(map[string]string{
		"history": "one two three",
		"recent":  "two three",
	})
	req.NoError(err)
	req.Equal("PARTNER SAID (chronological): one two three\n\nMOST RECENT: two three", out)

	_, err = Regenerate.Render(map[string]string{"history": "x"})
	req.ErrorContains(err, "missing variables: recent")
}

func TestExtractVariables(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"a", "b"}, ExtractVariables("{{a}} {{b}} {{a}}"))
	req.Empty(ExtractVariables("no placeholders"))
}
