package lint

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inclusivity/internal/allowlist"
	"github.com/dshills/inclusivity/internal/fragment"
	"github.com/dshills/inclusivity/internal/matcher"
	"github.com/dshills/inclusivity/internal/schema"
	"github.com/dshills/inclusivity/internal/source"
	"github.com/dshills/inclusivity/internal/source/ruby"
)

var testVocab = matcher.Vocabulary{
	"whitelist": {"allowlist", "passlist", "permitlist"},
	"blacklist": {"banlist", "blocklist", "denylist"},
	"master":    {"primary", "main"},
	"slave":     {"secondary", "replica"},
}

func newLinter(t *testing.T, opts Options) *Linter {
	t.Helper()
	policy := allowlist.New(
		allowlist.Entry{Term: "mastercard"},
		allowlist.Entry{Term: "blob/master", Partial: true},
	)
	engine, err := matcher.New(testVocab, policy)
	require.NoError(t, err)
	return New(engine, opts)
}

func inspectRuby(t *testing.T, l *Linter, src string) []schema.Offense {
	t.Helper()
	frags, err := ruby.Extractor{}.Extract(context.Background(), "x.rb", []byte(src))
	require.NoError(t, err)
	file := source.NewFile("x.rb", []byte(src))
	var out []schema.Offense
	for _, o := range l.Inspect(frags) {
		out = append(out, o.Schema(file))
	}
	return out
}

func correctRuby(t *testing.T, l *Linter, src string) string {
	t.Helper()
	out, err := l.Autocorrect(context.Background(), "x.rb", []byte(src), ruby.Extractor{})
	require.NoError(t, err)
	return string(out)
}

func TestRuby_NoOffenses(t *testing.T) {
	l := newLinter(t, Options{})
	for _, src := range []string{
		"# blob/master\n",
		"# https://github.com/aergonaut/rubocop-inclusivity/blob/master/foo/bar.rb\n",
		`x = "blob/master"` + "\n",
		`x = "BLOB/MASTER"` + "\n",
		"# providers like mastercard\n",
		`providers << "mastercard"` + "\n",
		"providers << :MASTERCARD\n",
		"# see more about foo here\n",
		"banlist = 1\n",
		"FOO_BANLIST = [\"foo\", \"bar\"]\n",
		"foo = [bar, buz]\n",
		"Foo::Bar\n",
		"foo.bar\n",
		"def foo(bar, buz = nil)\nend\n",
		"def foo(**buz)\nend\n",
		`"foo#{bar}"` + "\n",
	} {
		assert.Empty(t, inspectRuby(t, l, src), src)
	}
}

func TestRuby_Offenses(t *testing.T) {
	const (
		black  = "`%s` may be insensitive. Consider alternatives: banlist, blocklist, denylist"
		white  = "`whitelist` may be insensitive. Consider alternatives: allowlist, passlist, permitlist"
		pascal = "`Blacklist` may be insensitive. Consider alternatives: Banlist, Blocklist, Denylist"
	)
	blacklist := strings.Replace(black, "%s", "blacklist", 1)

	tests := []struct {
		name     string
		src      string
		messages []string
		columns  []int
		want     string
	}{
		{
			name:     "comment partial allowlist match",
			src:      "# dealers who are mastercarders\n",
			messages: []string{"`mastercarders` may be insensitive. Consider alternatives: primarycarders, maincarders"},
			columns:  []int{19},
			want:     "# dealers who are primarycarders\n",
		},
		{
			name:     "string partial allowlist match",
			src:      `dealers << "mastercarder"` + "\n",
			messages: []string{"`mastercarder` may be insensitive. Consider alternatives: primarycarder, maincarder"},
			columns:  []int{12},
			want:     `dealers << "primarycarder"` + "\n",
		},
		{
			name:     "comment",
			src:      "# see more about blacklist here\n",
			messages: []string{blacklist},
			columns:  []int{18},
			want:     "# see more about banlist here\n",
		},
		{
			name:     "variable",
			src:      "blacklist = 1\n",
			messages: []string{blacklist},
			columns:  []int{1},
			want:     "banlist = 1\n",
		},
		{
			name:     "constant",
			src:      "BLACKLIST = [\"foo\", \"bar\"]\n",
			messages: []string{"`BLACKLIST` may be insensitive. Consider alternatives: BANLIST, BLOCKLIST, DENYLIST"},
			columns:  []int{1},
			want:     "BANLIST = [\"foo\", \"bar\"]\n",
		},
		{
			name:     "multiword constant",
			src:      "FOO_BLACKLIST = [\"foo\", \"bar\"]\n",
			messages: []string{"`FOO_BLACKLIST` may be insensitive. Consider alternatives: FOO_BANLIST, FOO_BLOCKLIST, FOO_DENYLIST"},
			columns:  []int{1},
			want:     "FOO_BANLIST = [\"foo\", \"bar\"]\n",
		},
		{
			name:     "symbol",
			src:      ":blacklist\n",
			messages: []string{blacklist},
			columns:  []int{1},
			want:     ":banlist\n",
		},
		{
			name:     "single quoted string",
			src:      "'blacklist'\n",
			messages: []string{blacklist},
			columns:  []int{1},
			want:     "'banlist'\n",
		},
		{
			name:     "double quoted string",
			src:      "\"blacklist\"\n",
			messages: []string{blacklist},
			columns:  []int{1},
			want:     "\"banlist\"\n",
		},
		{
			name:     "interpolated string",
			src:      `"blacklist#{bar}"` + "\n",
			messages: []string{blacklist},
			columns:  []int{2},
			want:     `"banlist#{bar}"` + "\n",
		},
		{
			name:     "array",
			src:      "foo = [blacklist, whitelist]\n",
			messages: []string{blacklist, white},
			columns:  []int{8, 19},
			want:     "foo = [banlist, allowlist]\n",
		},
		{
			name:     "multiline array",
			src:      "foo = [\n  blacklist,\n  whitelist,\n]\n",
			messages: []string{blacklist, white},
			columns:  []int{3, 3},
			want:     "foo = [\n  banlist,\n  allowlist,\n]\n",
		},
		{
			name:     "class declaration",
			src:      "class Blacklist\nend\n",
			messages: []string{pascal},
			columns:  []int{7},
			want:     "class Banlist\nend\n",
		},
		{
			name:     "nested constant",
			src:      "Foo::Blacklist\n",
			messages: []string{pascal},
			columns:  []int{6},
			want:     "Foo::Banlist\n",
		},
		{
			name:     "snake case call",
			src:      "foo_blacklist\n",
			messages: []string{"`foo_blacklist` may be insensitive. Consider alternatives: foo_banlist, foo_blocklist, foo_denylist"},
			columns:  []int{1},
			want:     "foo_banlist\n",
		},
		{
			name:     "camel case call",
			src:      "fooBlacklist\n",
			messages: []string{"`fooBlacklist` may be insensitive. Consider alternatives: fooBanlist, fooBlocklist, fooDenylist"},
			columns:  []int{1},
			want:     "fooBanlist\n",
		},
		{
			name:     "chained calls",
			src:      "Foo.blacklist.whitelist\n",
			messages: []string{blacklist, white},
			columns:  []int{5, 15},
			want:     "Foo.banlist.allowlist\n",
		},
		{
			name:     "method name",
			src:      "def blacklist\nend\n",
			messages: []string{blacklist},
			columns:  []int{5},
			want:     "def banlist\nend\n",
		},
		{
			name:     "argument default",
			src:      "def foo(bar = blacklist)\nend\n",
			messages: []string{blacklist},
			columns:  []int{15},
			want:     "def foo(bar = banlist)\nend\n",
		},
		{
			name:     "optional argument",
			src:      "def foo(blacklist = nil)\nend\n",
			messages: []string{blacklist},
			columns:  []int{9},
			want:     "def foo(banlist = nil)\nend\n",
		},
		{
			name:     "rest argument",
			src:      "def foo(bar, *blacklist)\nend\n",
			messages: []string{blacklist},
			columns:  []int{15},
			want:     "def foo(bar, *banlist)\nend\n",
		},
		{
			name:     "keyword argument",
			src:      "def foo(blacklist: nil)\nend\n",
			messages: []string{blacklist},
			columns:  []int{9},
			want:     "def foo(banlist: nil)\nend\n",
		},
		{
			name:     "keyword rest argument",
			src:      "def foo(**blacklist)\nend\n",
			messages: []string{blacklist},
			columns:  []int{11},
			want:     "def foo(**banlist)\nend\n",
		},
	}
	l := newLinter(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offs := inspectRuby(t, l, tt.src)
			require.Len(t, offs, len(tt.messages))
			for i, o := range offs {
				assert.Equal(t, tt.messages[i], o.Message)
				assert.Equal(t, tt.columns[i], o.Location.Column)
				assert.True(t, o.Correctable)
			}
			assert.Equal(t, tt.want, correctRuby(t, l, tt.src))
		})
	}
}

func TestCheck_Severity(t *testing.T) {
	l := newLinter(t, Options{
		Severity:   schema.SeverityInfo,
		Severities: map[string]schema.Severity{"SLAVE": schema.SeverityCritical},
	})
	off, ok := l.Check(fragment.Fragment{Kind: fragment.Identifier, Text: "slaveNode", End: 9})
	require.True(t, ok)
	assert.Equal(t, schema.SeverityCritical, off.Severity)
	assert.Equal(t, "secondaryNode", off.Correction)

	off, ok = l.Check(fragment.Fragment{Kind: fragment.Identifier, Text: "master", End: 6})
	require.True(t, ok)
	assert.Equal(t, schema.SeverityInfo, off.Severity)
}

func TestCheck_DefaultSeverity(t *testing.T) {
	l := newLinter(t, Options{})
	off, ok := l.Check(fragment.Fragment{Text: "master"})
	require.True(t, ok)
	assert.Equal(t, schema.SeverityWarn, off.Severity)
}

func TestCheck_SanitizedNotCorrectable(t *testing.T) {
	l := newLinter(t, Options{})
	off, ok := l.Check(fragment.Fragment{Kind: fragment.CommentWord, Text: "black\x00list", End: 10})
	require.True(t, ok)
	assert.False(t, off.Correctable)
	assert.Empty(t, off.Correction)
	_, hasEdit := off.Edit()
	assert.False(t, hasEdit)
	assert.Contains(t, off.Message, "`blacklist`")
}

func TestCheck_UnknownCasingNotCorrectable(t *testing.T) {
	l := newLinter(t, Options{})
	for _, f := range []fragment.Fragment{
		{Kind: fragment.Identifier, Text: "BLACKlist", Start: 0, End: 9},
		{Kind: fragment.Constant, Text: "BLACKlist", Start: 0, End: 9},
		{Kind: fragment.String, Text: "the BLACKlist", Start: 0, End: 15, Delim: `"`},
	} {
		off, ok := l.Check(f)
		require.True(t, ok, f.Text)
		assert.False(t, off.Correctable, f.Text)
		assert.Empty(t, off.Correction, f.Text)
		_, ok = off.Edit()
		assert.False(t, ok, f.Text)
	}
}

func TestCorrect_UnknownCasingStaysOutstanding(t *testing.T) {
	l := newLinter(t, Options{})
	src := []byte("BLACKlist master")
	offs := l.Inspect(fragment.Words(string(src), 0))
	require.Len(t, offs, 2)

	out := Correct(src, offs)
	assert.Equal(t, "BLACKlist primary", string(out))
	assert.False(t, offs[0].Corrected)
	assert.True(t, offs[1].Corrected)
}

func TestCorrect_NoOpEditNotMarked(t *testing.T) {
	src := []byte("master")
	offs := []Offense{{
		Fragment:    fragment.Fragment{Kind: fragment.Identifier, Text: "master", Start: 0, End: 6},
		Correction:  "master",
		Correctable: true,
	}}
	out := Correct(src, offs)
	assert.Equal(t, "master", string(out))
	assert.False(t, offs[0].Corrected)
}

func TestCheck_MultilineLiteral(t *testing.T) {
	l := newLinter(t, Options{})
	off, ok := l.Check(fragment.Fragment{Kind: fragment.String, Text: "one\nwhitelist", Start: 0, End: 15, Delim: "`"})
	require.True(t, ok)
	assert.True(t, off.Correctable)
	assert.Equal(t, "`one\nwhitelist` may be insensitive. Consider alternatives: one\nallowlist, one\npasslist, one\npermitlist", off.Message)
	assert.Equal(t, "`one\nallowlist`", off.Correction)
}

func TestRuby_MultilineAndHeredoc(t *testing.T) {
	l := newLinter(t, Options{})
	src := "x = \"first line\nthe whitelist\"\ny = <<~TXT\n  the blacklist here\nTXT\n"
	offs := inspectRuby(t, l, src)
	require.Len(t, offs, 2)
	assert.True(t, offs[0].Correctable)
	assert.Equal(t, "whitelist", offs[0].Term)
	assert.Equal(t, "blacklist", offs[1].Term)
	assert.True(t, offs[1].Correctable)

	want := "x = \"first line\nthe allowlist\"\ny = <<~TXT\n  the banlist here\nTXT\n"
	assert.Equal(t, want, correctRuby(t, l, src))
}

func TestAutocorrect_BoundedPasses(t *testing.T) {
	engine, err := matcher.New(matcher.Vocabulary{"master": {"mastermind"}}, nil)
	require.NoError(t, err)
	l := New(engine, Options{})

	out, err := l.Autocorrect(context.Background(), "x.rb", []byte("master = 1\n"), ruby.Extractor{})
	require.NoError(t, err)
	assert.Equal(t, MaxPasses, strings.Count(string(out), "mind"))
}

func TestAutocorrect_ExtractError(t *testing.T) {
	l := newLinter(t, Options{})
	failing := source.ExtractorFunc(func(context.Context, string, []byte) ([]fragment.Fragment, error) {
		return nil, assert.AnError
	})
	_, err := l.Autocorrect(context.Background(), "x", []byte("master"), failing)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCorrect_MarksApplied(t *testing.T) {
	l := newLinter(t, Options{})
	src := []byte("master slave")
	offs := l.Inspect(fragment.Words(string(src), 0))
	require.Len(t, offs, 2)

	out := Correct(src, offs)
	assert.Equal(t, "primary secondary", string(out))
	assert.True(t, offs[0].Corrected)
	assert.True(t, offs[1].Corrected)
}

func TestApply(t *testing.T) {
	src := []byte("0123456789")
	out, applied := Apply(src, []Edit{
		{Start: 6, End: 8, New: "x"},
		{Start: 1, End: 3, New: "ab"},
		{Start: 2, End: 4, New: "overlap"},
		{Start: 9, End: 12, New: "out of range"},
	})
	assert.Equal(t, "0ab345x89", string(out))
	assert.Equal(t, []bool{true, true, false, false}, applied)
}

func TestApply_NoEdits(t *testing.T) {
	out, applied := Apply([]byte("same"), nil)
	assert.Equal(t, "same", string(out))
	assert.Empty(t, applied)
}
