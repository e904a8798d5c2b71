package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResearchValidation(t *testing.T) {
	ai := &fakeCompleter{}
	svc := NewResearchService(ResearchWithCompleter(ai))

	_, err := svc.Research(context.Background(), ResearchRequest{})
	require.ErrorIs(t, err, ErrQueryRequired)

	_, err = svc.Research(context.Background(), ResearchRequest{
		Query: strings.Repeat("q", 5001),
	})
	require.ErrorIs(t, err, ErrQueryTooLong)

	require.Equal(t, 0, ai.calls)
}

func TestResearchPromptWithoutPrecedents(t *testing.T) {
	ai := &fakeCompleter{reply: "Analysis of adverse possession under the Limitation Act."}
	svc := NewResearchService(ResearchWithCompleter(ai))

	result, err := svc.Research(context.Background(), ResearchRequest{
		Query: "What is the limitation period for adverse possession?",
	})
	require.NoError(t, err)
	require.Equal(t, "Analysis of adverse possession under the Limitation Act.", result.Insights)

	require.Len(t, ai.lastMessages, 2)
	require.Equal(t, "system", ai.lastMessages[0].Role)
	require.Contains(t, ai.lastMessages[0].Content, "Indian case law")

	prompt := ai.lastMessages[1].Content
	require.Contains(t, prompt, "Legal Research Query: What is the limitation period for adverse possession?")
	require.NotContains(t, prompt, "Relevant precedents found:")
}

func TestResearchPromptWithPrecedents(t *testing.T) {
	ai := &fakeCompleter{reply: "ok"}
	svc := NewResearchService(ResearchWithCompleter(ai))

	_, err := svc.Research(context.Background(), ResearchRequest{
		Query: "Maintainability of a writ against a private body",
		Precedents: []PrecedentRef{
			{Title: "Zee Telefilms v. Union of India", Citation: "(2005) 4 SCC 649", Summary: "BCCI not State under Article 12"},
			{Title: "Andi Mukta v. V.R. Rudani", Citation: "(1989) 2 SCC 691", Summary: "Mandamus against bodies performing public duty"},
		},
	})
	require.NoError(t, err)

	prompt := ai.lastMessages[1].Content
	require.Contains(t, prompt, "Relevant precedents found:")
	require.Contains(t, prompt, "- Zee Telefilms v. Union of India ((2005) 4 SCC 649): BCCI not State under Article 12")
	require.Contains(t, prompt, "- Andi Mukta v. V.R. Rudani ((1989) 2 SCC 691): Mandamus against bodies performing public duty")
}

func TestResearchUpstreamError(t *testing.T) {
	ai := &fakeCompleter{err: context.DeadlineExceeded}
	svc := NewResearchService(ResearchWithCompleter(ai))

	_, err := svc.Research(context.Background(), ResearchRequest{Query: "anything"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
