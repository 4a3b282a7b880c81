package declaration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/ntdecl/declaration"
)

func TestNameSet(t *testing.T) {
	set := declaration.NewNameSet("NtClose", "NtOpenFile", "NtClose")
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"NtClose", "NtOpenFile"}, set.Names())
	assert.True(t, set.Has("NtOpenFile"))
	assert.False(t, set.Has("NtCreateFile"))
	assert.True(t, set.Add("NtCreateFile"))
	assert.False(t, set.Add("NtCreateFile"))
	assert.Equal(t, []string{"NtClose", "NtOpenFile", "NtCreateFile"}, set.Names())

	var empty *declaration.NameSet
	assert.False(t, empty.Has("NtClose"))
	assert.Equal(t, 0, empty.Len())
}

func TestTable(t *testing.T) {
	table := declaration.NewTable()
	table.Add(&declaration.Declaration{Name: "NtClose", Args: []string{"Handle"}, Source: declaration.SourceHeader})
	table.Add(&declaration.Declaration{Name: "NtYieldExecution", Args: []string{}})
	table.Add(&declaration.Declaration{Name: "NtClose", Args: []string{"ObjectHandle"}})

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "NtClose", table.Declarations[0].Name)
	assert.Equal(t, []string{"ObjectHandle"}, table.Lookup("NtClose").Args)
	assert.Nil(t, table.Lookup("NtOpenFile"))
	assert.Equal(t, declaration.Mapping{
		"NtClose":          {"ObjectHandle"},
		"NtYieldExecution": {},
	}, table.Mapping())
}

func TestMapping_Names(t *testing.T) {
	mapping := declaration.Mapping{"NtWriteFile": nil, "NtClose": nil, "NtOpenKey": nil}
	assert.Equal(t, []string{"NtClose", "NtOpenKey", "NtWriteFile"}, mapping.Names())
	assert.True(t, mapping.Has("NtClose"))
	assert.False(t, mapping.Has("ZwClose"))
}

func TestIsNative(t *testing.T) {
	assert.True(t, declaration.IsNative("NtClose"))
	assert.False(t, declaration.IsNative("ZwClose"))
	assert.False(t, declaration.IsNative("CreateFileW"))
}
