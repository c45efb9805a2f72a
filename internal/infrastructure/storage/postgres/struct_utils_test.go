package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kiranabook/internal/core/id"
)

type mockEntity struct {
	ID       id.ID  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Derived  string `db:"-" json:"derived"`
	internal string //nolint:unused // untagged fields must be skipped
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()
	assert.Equal(t, []string{"id", "name"}, cols)

	// Pointer type resolves to the same columns.
	colsPtr := ExtractDBColumns[*mockEntity]()
	assert.Equal(t, cols, colsPtr)
}

func TestStructToMap(t *testing.T) {
	e := mockEntity{ID: id.New(), Name: "Basmati Rice", Derived: "skip me"}

	m := StructToMap(&e)
	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, "Basmati Rice", m["name"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 2)
}

func TestStructToMapNil(t *testing.T) {
	var e *mockEntity
	assert.Nil(t, StructToMap(e))
}
