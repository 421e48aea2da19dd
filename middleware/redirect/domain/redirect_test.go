package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePath_LowercasesOnly(t *testing.T) {
	require.Equal(t, "/about-us?ref=abc", NormalizePath("/About-Us?Ref=ABC"))
	// sem trim e sem decode
	require.Equal(t, " /a%2fb/ ", NormalizePath(" /A%2Fb/ "))
	require.Equal(t, "", NormalizePath(""))
}

func TestRule_Validate(t *testing.T) {
	require.NoError(t, Rule{SourcePath: "/a", DestinationURL: "/b"}.Validate())
	require.ErrorIs(t, Rule{DestinationURL: "/b"}.Validate(), ErrEmptySource)
	require.ErrorIs(t, Rule{SourcePath: "/a", DestinationURL: "  "}.Validate(), ErrEmptyDestination)
}

func TestLookupEvent_Outcome(t *testing.T) {
	require.Equal(t, OutcomeHit, LookupEvent{Matched: true}.Outcome())
	require.Equal(t, OutcomeMiss, LookupEvent{}.Outcome())
}
