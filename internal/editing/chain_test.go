package editing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/testutil"
)

type stubPolicy struct {
	out   Outcome
	err   error
	calls *[]string
	name  string
}

func (s stubPolicy) DeleteCharacterLeft(document.ID) (Outcome, error) {
	*s.calls = append(*s.calls, s.name)
	return s.out, s.err
}

func (s stubPolicy) DeleteSelection(document.ID) (Outcome, error) {
	return s.DeleteCharacterLeft(document.None)
}

func stubChain(calls *[]string, outs ...Outcome) *Chain {
	c := &Chain{}
	for i := range c.policies {
		c.policies[i] = stubPolicy{out: outs[i], calls: calls, name: Level(i).String()}
	}
	return c
}

func TestChain_Escalation(t *testing.T) {
	tests := []struct {
		name      string
		outs      []Outcome
		want      Outcome
		wantCalls []string
	}{
		{
			name:      "token handles it",
			outs:      []Outcome{Executed, Executed, Executed, Executed},
			want:      Executed,
			wantCalls: []string{"token"},
		},
		{
			name:      "paragraph handles it",
			outs:      []Outcome{PassThrough, PassThrough, Executed, Executed},
			want:      Executed,
			wantCalls: []string{"token", "sentence", "paragraph"},
		},
		{
			name:      "skipped stops escalation",
			outs:      []Outcome{PassThrough, Skipped, Executed, Executed},
			want:      Skipped,
			wantCalls: []string{"token", "sentence"},
		},
		{
			name:      "nobody handles it",
			outs:      []Outcome{PassThrough, PassThrough, PassThrough, PassThrough},
			want:      Skipped,
			wantCalls: []string{"token", "sentence", "paragraph", "document"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			out, err := stubChain(&calls, tt.outs...).DeleteCharacterLeft(1)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
			require.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestChain_WrapsPolicyErrors(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	c := stubChain(&calls, PassThrough, Executed, Executed, Executed)
	c.policies[LevelSentence] = stubPolicy{err: boom, calls: &calls}

	out, err := c.DeleteSelection(1)

	require.Equal(t, Skipped, out)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "delete-selection at sentence level")
}

func TestEditor_ChainPerDocument(t *testing.T) {
	f := testutil.TwoChapters(t)
	ed := newEditor(t, f)
	ctx := t.Context()

	alpha, err := ed.Chain(ctx, f.Token("Alpha"))
	require.NoError(t, err)
	stop, err := ed.Chain(ctx, f.TokenN(".", 0))
	require.NoError(t, err)
	beta, err := ed.Chain(ctx, f.Token("Beta"))
	require.NoError(t, err)

	require.Same(t, alpha, stop, "tokens of one document share a chain")
	require.NotSame(t, alpha, beta)
	require.Equal(t, f.Documents[0], alpha.Root())
	require.Equal(t, f.Documents[1], beta.Root())
	require.NotNil(t, alpha.Token())
	require.NotNil(t, alpha.Sentence())
	require.NotNil(t, alpha.Paragraph())
	require.NotNil(t, alpha.Document())
}

func TestEditor_ChainRejectsContainers(t *testing.T) {
	f := testutil.ItIs(t)
	ed := newEditor(t, f)

	_, err := ed.Chain(t.Context(), f.Documents[0])

	require.ErrorIs(t, err, document.ErrStructuralTypeMismatch)
}

func TestEditor_ZapEvictsCachedChains(t *testing.T) {
	f := testutil.CatDog(t)
	ed := newEditor(t, f)
	ctx := t.Context()
	gone := []document.ID{f.Token("cat"), f.Token("-"), f.Token("dog")}
	for _, leaf := range f.Tree.Leaves(f.Root) {
		_, err := ed.Chain(ctx, leaf)
		require.NoError(t, err)
	}
	require.Equal(t, 4, ed.engine.chains.entities.Len())
	subjects := make([]string, 0, len(gone))
	for _, id := range gone {
		subjects = append(subjects, f.Tree.Subject(id))
	}
	f.Place("-", 1)

	require.True(t, run(t, ed, DeleteLeft{}))

	for _, subject := range subjects {
		_, ok := ed.engine.chains.entities.Get(ctx, subject)
		require.False(t, ok, "chain for %s still cached", subject)
	}
	newline, err := ed.Chain(ctx, f.Token("\n"))
	require.NoError(t, err)
	require.Equal(t, f.Documents[0], newline.Root())
}

func TestChain_TokenLevelAlonePassesThrough(t *testing.T) {
	f := testutil.CatDog(t)
	ed := newEditor(t, f)
	dash := f.Place("-", 1)
	before := f.Texts()
	chain, err := ed.Chain(t.Context(), dash)
	require.NoError(t, err)

	out, err := chain.Token().DeleteCharacterLeft(dash)

	require.NoError(t, err)
	require.Equal(t, PassThrough, out)
	require.Equal(t, before, f.Texts())
}

func TestOutcomeAndLevelStrings(t *testing.T) {
	require.Equal(t, "pass-through", PassThrough.String())
	require.Equal(t, "Outcome(9)", Outcome(9).String())
	require.Equal(t, "paragraph", LevelParagraph.String())
	require.Equal(t, "Level(7)", Level(7).String())
}
