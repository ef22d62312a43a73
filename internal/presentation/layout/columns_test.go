package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

func TestPackColumns(t *testing.T) {
	cs := PackColumns(69, 0, 0, 10, 1, ColInput, ColOutput, ColCache, ColTotal, ColCost)
	require.NoError(t, cs.Validate())

	assert.Equal(t, 5, cs.Arity())
	assert.Equal(t, []Column{ColInput, ColOutput, ColCache, ColTotal, ColCost}, cs.Columns())

	cost, ok := cs.Field(ColCost)
	require.True(t, ok)
	assert.Equal(t, 66, cost.At)
	assert.Equal(t, 57, cost.Start())
	assert.Equal(t, model.CostAmount, cost.Kind)

	input, ok := cs.Field(ColInput)
	require.True(t, ok)
	assert.Equal(t, 13, input.Start())
	assert.Greater(t, input.Start(), cs.LabelStop())

	last, ok := cs.LastField()
	require.True(t, ok)
	assert.Equal(t, ColCost, last.Column)
	assert.Equal(t, cs.ContentEnd(), last.Stop())
}

func TestFieldSpan(t *testing.T) {
	tests := []struct {
		name      string
		field     FieldSpec
		wantStart int
		wantStop  int
	}{
		{"right", FieldSpec{Width: 10, Anchor: AnchorRight, At: 20}, 11, 20},
		{"left", FieldSpec{Width: 10, Anchor: AnchorLeft, At: 20}, 20, 29},
		{"center", FieldSpec{Width: 6, Anchor: AnchorCenter, At: 10, End: 19}, 12, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStart, tt.field.Start())
			assert.Equal(t, tt.wantStop, tt.field.Stop())
		})
	}
}

func TestColumnSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		cs      ColumnSet
		wantErr error
	}{
		{
			name:    "too_narrow",
			cs:      ColumnSet{Width: 5},
			wantErr: ErrInvalidColumnSet,
		},
		{
			name: "field_past_content_end",
			cs: ColumnSet{Width: 40, LabelWidth: 10, Fields: []FieldSpec{
				NewField(ColCost, 38),
			}},
			wantErr: ErrInvalidColumnSet,
		},
		{
			name: "field_over_label",
			cs: ColumnSet{Width: 40, LabelWidth: 10, Fields: []FieldSpec{
				NewField(ColCost, 15),
			}},
			wantErr: ErrOverlappingFields,
		},
		{
			name: "fields_overlap",
			cs: ColumnSet{Width: 60, LabelWidth: 10, Fields: []FieldSpec{
				NewField(ColTotal, 40),
				NewField(ColCost, 45),
			}},
			wantErr: ErrOverlappingFields,
		},
		{
			name: "sub_indent_below_label_indent",
			cs: ColumnSet{Width: 60, LabelIndent: 2, SubIndent: 1, LabelWidth: 10, Fields: []FieldSpec{
				NewField(ColCost, 57),
			}},
			wantErr: ErrInvalidColumnSet,
		},
		{
			name: "valid_left_anchor",
			cs: ColumnSet{Width: 40, LabelWidth: 10, Fields: []FieldSpec{
				{Column: ColCost, Kind: model.CostAmount, Width: 10, Anchor: AnchorLeft, At: 20},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cs.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAnchor(t *testing.T) {
	for _, a := range []Anchor{AnchorRight, AnchorLeft, AnchorCenter} {
		got, err := ParseAnchor(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := ParseAnchor("")
	require.NoError(t, err)
	assert.Equal(t, AnchorRight, got)

	_, err = ParseAnchor("diagonal")
	assert.Error(t, err)
}
