package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.appointy.com/gqlclientgen/query"
)

func field(name string, sub ...query.Item) query.Item {
	return query.Item{Kind: query.KindField, Alias: name, Name: name, Sub: query.Selection{Items: sub}}
}

func TestMergeFieldsDedupesIdenticalResponseKeys(t *testing.T) {
	items := []query.Item{
		field("name"),
		field("name"),
	}
	out, err := mergeFields(items, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestMergeFieldsPreservesFirstOccurrenceOrder(t *testing.T) {
	items := []query.Item{
		field("b"),
		field("a"),
		field("b"),
	}
	out, err := mergeFields(items, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "b", out[0].Name)
	require.Equal(t, "a", out[1].Name)
}

func TestMergeFieldsConflictsOnDifferentName(t *testing.T) {
	items := []query.Item{
		{Kind: query.KindField, Alias: "x", Name: "one"},
		{Kind: query.KindField, Alias: "x", Name: "two"},
	}
	_, err := mergeFields(items, nil)
	require.Error(t, err)
}

func TestMergeFieldsConflictsOnDifferentSubSelection(t *testing.T) {
	items := []query.Item{
		field("thing", field("a")),
		field("thing", field("b")),
	}
	_, err := mergeFields(items, nil)
	require.Error(t, err)
}

func TestFieldsCompatibleIgnoresSubSelectionOrder(t *testing.T) {
	a := field("thing", field("a"), field("b"))
	b := field("thing", field("b"), field("a"))
	require.True(t, fieldsCompatible(a, b))
}

func TestSelectionsEqualComparesInlineFragmentsAndSpreads(t *testing.T) {
	a := query.Selection{Items: []query.Item{
		{Kind: query.KindInlineFragment, TypeCondition: "Dog", Sub: query.Selection{Items: []query.Item{field("isGoodDog")}}},
		{Kind: query.KindFragmentSpread, FragmentName: "Shared"},
	}}
	b := query.Selection{Items: []query.Item{
		{Kind: query.KindFragmentSpread, FragmentName: "Shared"},
		{Kind: query.KindInlineFragment, TypeCondition: "Dog", Sub: query.Selection{Items: []query.Item{field("isGoodDog")}}},
	}}
	require.True(t, selectionsEqual(a, b))

	c := query.Selection{Items: []query.Item{
		{Kind: query.KindInlineFragment, TypeCondition: "Person", Sub: query.Selection{Items: []query.Item{field("isGoodDog")}}},
		{Kind: query.KindFragmentSpread, FragmentName: "Shared"},
	}}
	require.False(t, selectionsEqual(a, c))
}

func TestSelectionsEqualDifferentLengthsAreUnequal(t *testing.T) {
	a := query.Selection{Items: []query.Item{field("a")}}
	b := query.Selection{Items: []query.Item{field("a"), field("b")}}
	require.False(t, selectionsEqual(a, b))
}
