package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_SetInitialGroupsReplaces(t *testing.T) {
	req := require.New(t)

	// Given
	tr := NewTracker()
	tr.SetInitialGroups("u1", []string{"g9"})

	// When
	stored := tr.SetInitialGroups("u1", []string{"g2", "g1", "g2", " ", ""})

	// Then
	req.Equal([]string{"g1", "g2"}, stored)
	req.Equal([]string{"g1", "g2"}, tr.AllGroups("u1"))
}

func TestTracker_AddRemoveIdempotent(t *testing.T) {
	req := require.New(t)

	// Given
	tr := NewTracker()

	// When
	tr.AddGroup("u1", "g1")
	tr.AddGroup("u1", "g1")
	tr.AddGroup("u1", "")
	tr.RemoveGroup("u1", "g2")

	// Then
	req.Equal([]string{"g1"}, tr.AllGroups("u1"))

	// When
	tr.RemoveGroup("u1", "g1")
	tr.RemoveGroup("u1", "g1")

	// Then
	req.Empty(tr.AllGroups("u1"))
	req.Empty(tr.AllGroups("unknown"))
}

func TestParseGroups(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "absent", raw: "", want: []string{}},
		{name: "valid", raw: `["g1","g2"]`, want: []string{"g1", "g2"}},
		{name: "duplicates and blanks", raw: `["g2","g1","g2",""]`, want: []string{"g1", "g2"}},
		{name: "malformed", raw: `["g1",`, want: []string{}},
		{name: "not an array", raw: `{"g1":true}`, want: []string{}},
		{name: "wrong element type", raw: `[1,2]`, want: []string{}},
		{name: "mixed element types keep the strings", raw: `["g1",2,null,{"id":"g3"},"g2"]`, want: []string{"g1", "g2"}},
		{name: "empty array", raw: `[]`, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseGroups(tc.raw))
		})
	}
}
