package speaker

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func newResolver() *Resolver {
	return NewResolver(regexp.MustCompile("(?i)^partner$"))
}

func TestResolver_Join(t *testing.T) {
	tests := []struct {
		description string
		joins       []Participant
		wantPartner string
	}{
		{
			"Should assign a matching name immediately",
			[]Participant{{ID: "p1", DisplayName: "Partner"}},
			"p1",
		},
		{
			"Should prefer a regex match that arrives before the second human",
			[]Participant{{ID: "p1", DisplayName: "PARTNER"}, {ID: "p2", DisplayName: "Coach"}},
			"p1",
		},
		{
			"Should fall back to the second human",
			[]Participant{{ID: "p1", DisplayName: "Facilitator"}, {ID: "p2", DisplayName: "Alex"}},
			"p2",
		},
		{
			"Should never assign a third human",
			[]Participant{
				{ID: "p1", DisplayName: "Facilitator"},
				{ID: "p2", DisplayName: "Alex"},
				{ID: "p3", DisplayName: "partner"},
			},
			"p2",
		},
		{
			"Should keep the first of two matching names",
			[]Participant{{ID: "p1", DisplayName: "partner"}, {ID: "p2", DisplayName: "partner"}},
			"p1",
		},
		{
			"Should leave a lone non-matching human unassigned",
			[]Participant{{ID: "p1", DisplayName: "Facilitator"}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			r := newResolver()
			for _, p := range tt.joins {
				r.Join(p, false)
			}
			got, ok := r.PartnerID()
			req.Equal(tt.wantPartner, got)
			req.Equal(tt.wantPartner != "", ok)
		})
	}
}

func TestResolver_IgnoresSelf(t *testing.T) {
	req := require.New(t)
	r := newResolver()

	req.False(r.Join(Participant{ID: "bot", DisplayName: "ai-coach"}, true))
	req.False(r.Join(Participant{ID: "p1", DisplayName: "Facilitator"}, false))
	req.Equal([]string{"p1"}, r.JoinOrder())

	_, ok := r.PartnerID()
	req.False(ok)
}

func TestResolver_MatchIsAnchoredAtStart(t *testing.T) {
	req := require.New(t)
	r := NewResolver(regexp.MustCompile("(?i)partner"))

	req.False(r.Join(Participant{ID: "p1", DisplayName: "Not a partner"}, false))
	req.True(r.Join(Participant{ID: "p2", DisplayName: "Partner Jane"}, false))
}

func TestResolver_Leave(t *testing.T) {
	req := require.New(t)
	r := newResolver()
	r.Join(Participant{ID: "f1", DisplayName: "Facilitator"}, false)
	r.Join(Participant{ID: "p1", DisplayName: "partner"}, false)

	req.False(r.Leave("f1"))
	req.True(r.IsPartner("p1"))
	_, known := r.DisplayName("f1")
	req.False(known)

	req.True(r.Leave("p1"))
	req.Empty(r.JoinOrder())
	_, ok := r.PartnerID()
	req.False(ok)

	req.True(r.Join(Participant{ID: "p9", DisplayName: "Partner"}, false))
	req.True(r.IsPartner("p9"))
}

func TestResolver_DisplayName(t *testing.T) {
	req := require.New(t)
	r := newResolver()
	r.Join(Participant{ID: "p1", DisplayName: "Alex"}, false)

	name, ok := r.DisplayName("p1")
	req.True(ok)
	req.Equal("Alex", name)
}
