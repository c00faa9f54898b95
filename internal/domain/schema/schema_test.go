package schema

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/leengari/tabledb/internal/domain/errors"
)

func peopleSchema() Schema {
	return Schema{
		{Name: "name", Type: TypeString},
		{Name: "age", Type: TypeInt},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr bool
	}{
		{name: "valid", schema: peopleSchema()},
		{name: "all types", schema: Schema{
			{Name: "a", Type: TypeString},
			{Name: "b", Type: TypeInt},
			{Name: "c", Type: TypeFloat},
			{Name: "d", Type: TypeBool},
			{Name: "e", Type: TypeDate},
		}},
		{name: "empty", schema: Schema{}, wantErr: true},
		{name: "unnamed column", schema: Schema{{Type: TypeInt}}, wantErr: true},
		{name: "duplicate column", schema: Schema{{Name: "a", Type: TypeInt}, {Name: "a", Type: TypeBool}}, wantErr: true},
		{name: "unknown type", schema: Schema{{Name: "a", Type: "str"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate("people")
			if !tt.wantErr {
				assert.NilError(t, err)
				return
			}
			assert.Assert(t, stderrors.Is(err, errors.ErrInvalidSchema), "got %v", err)
			assert.Assert(t, stderrors.Is(err, errors.ErrValidation))
		})
	}
}

func TestCheckValuesArity(t *testing.T) {
	err := peopleSchema().CheckValues("people", []any{"Ana"})
	assert.Assert(t, stderrors.Is(err, errors.ErrArity), "got %v", err)

	var verr *errors.ValidationError
	assert.Assert(t, stderrors.As(err, &verr))
	assert.Equal(t, verr.Given, "1")
	assert.Equal(t, verr.Expected, "2")
}

func TestCheckValuesTypeNamesFirstOffendingColumn(t *testing.T) {
	err := peopleSchema().CheckValues("people", []any{30, "Ana"})
	assert.Assert(t, stderrors.Is(err, errors.ErrType), "got %v", err)

	var verr *errors.ValidationError
	assert.Assert(t, stderrors.As(err, &verr))
	assert.Equal(t, verr.Column, "name")
	assert.Equal(t, verr.Given, "int")
	assert.Equal(t, verr.Expected, "string")
	assert.Equal(t, err.Error(), `invalid type of field "name": given "int", expected "string"`)
}

func TestCheckValuesIsStrictAboutRuntimeType(t *testing.T) {
	s := Schema{{Name: "n", Type: TypeInt}, {Name: "when", Type: TypeDate}}

	assert.NilError(t, s.CheckValues("t", []any{1, time.Now()}))
	assert.Assert(t, stderrors.Is(s.CheckValues("t", []any{int64(1), time.Now()}), errors.ErrType))
	assert.Assert(t, stderrors.Is(s.CheckValues("t", []any{1, "2024-01-13"}), errors.ErrType))
	assert.Assert(t, stderrors.Is(s.CheckValues("t", []any{nil, time.Now()}), errors.ErrType))
}

func TestCheckValuesRejectsNonFiniteFloats(t *testing.T) {
	s := Schema{{Name: "score", Type: TypeFloat}}

	assert.NilError(t, s.CheckValues("t", []any{2.5}))
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := s.CheckValues("t", []any{f})
		assert.Assert(t, stderrors.Is(err, errors.ErrType), "value %v: got %v", f, err)

		var verr *errors.ValidationError
		assert.Assert(t, stderrors.As(err, &verr))
		assert.Equal(t, verr.Column, "score")
	}
}

func TestSerializeDate(t *testing.T) {
	d := time.Date(2024, time.January, 13, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, Serialize(d), "2024-01-13")
	assert.Equal(t, Serialize(42), 42)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		typ     ColumnType
		raw     string
		want    any
		wantErr bool
	}{
		{typ: TypeString, raw: `"Ana"`, want: "Ana"},
		{typ: TypeInt, raw: `30`, want: 30},
		{typ: TypeFloat, raw: `1.5`, want: 1.5},
		{typ: TypeBool, raw: `true`, want: true},
		{typ: TypeDate, raw: `"2024-01-13"`, want: "2024-01-13"},
		{typ: TypeInt, raw: `"30"`, wantErr: true},
		{typ: TypeDate, raw: `"13/01/2024"`, wantErr: true},
		{typ: "blob", raw: `1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ)+" "+tt.raw, func(t *testing.T) {
			got, err := Decode(tt.typ, json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Assert(t, err != nil)
				return
			}
			assert.NilError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	v, ok := Normalize(TypeDate, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC))
	assert.Assert(t, ok)
	assert.Equal(t, v, "2020-02-29")

	v, ok = Normalize(TypeDate, "2020-02-29")
	assert.Assert(t, ok)
	assert.Equal(t, v, "2020-02-29")

	_, ok = Normalize(TypeDate, "not-a-date")
	assert.Assert(t, !ok)

	_, ok = Normalize(TypeDate, "2021-02-29")
	assert.Assert(t, !ok)

	_, ok = Normalize(TypeInt, "30")
	assert.Assert(t, !ok)

	_, ok = Normalize(TypeString, []string{"a"})
	assert.Assert(t, !ok)
}

func TestParse(t *testing.T) {
	v, err := Parse(TypeInt, "30")
	assert.NilError(t, err)
	assert.Equal(t, v, 30)

	v, err = Parse(TypeString, `"Ana"`)
	assert.NilError(t, err)
	assert.Equal(t, v, "Ana")

	v, err = Parse(TypeDate, "2024-01-13")
	assert.NilError(t, err)
	assert.Equal(t, v.(time.Time).Format(DateLayout), "2024-01-13")

	_, err = Parse(TypeBool, "maybe")
	assert.ErrorContains(t, err, "not a bool")
}
