package ntinternals_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/ntdecl/declaration"
	"github.com/viant/ntdecl/inspector/ntinternals"
)

const createFilePage = "<html><body><pre>\r\n" +
	"NTSYSAPI\r\nNTSTATUS\r\nNTAPI\r\n" +
	"<b>NtCreateFile(</b>\r\n" +
	"  OUT PHANDLE <i><font color=\"blue\"> FileHandle </font></i>,\r\n" +
	"  IN ACCESS_MASK <i><font color=\"blue\">DesiredAccess</font></i>,\r\n" +
	"  IN PLARGE_INTEGER <i><font color=\"blue\">AllocationSize&nbsp;</font></i> OPTIONAL );\r\n" +
	"</pre><i><font color=\"blue\">Unrelated</font></i></body></html>"

func TestExtractArgs(t *testing.T) {
	tests := []struct {
		name     string
		function string
		page     string
		expect   []string
	}{
		{
			name:     "declaration region only",
			function: "NtCreateFile",
			page:     createFilePage,
			expect:   []string{"FileHandle", "DesiredAccess", "AllocationSize"},
		},
		{
			name:     "trimmed and unescaped",
			function: "NtCreateFile",
			page:     "NtCreateFile(\r\n  OUT PHANDLE <i><font color=\"blue\"> FileHandle </font></i>,\r\n  IN ACCESS_MASK <i><font color=\"blue\">DesiredAccess</font></i> );",
			expect:   []string{"FileHandle", "DesiredAccess"},
		},
		{
			name:     "nullary",
			function: "NtYieldExecution",
			page:     "NtYieldExecution( );",
			expect:   []string{},
		},
		{
			name:     "function missing",
			function: "NtClose",
			page:     createFilePage,
			expect:   []string{},
		},
		{
			name:     "terminator missing",
			function: "NtClose",
			page:     "NtClose(<i><font color=\"blue\">Handle</font></i>",
			expect:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ntinternals.ExtractArgs(tc.function, []byte(tc.page)))
		})
	}
}

func TestFunctionName(t *testing.T) {
	assert.Equal(t, "NtCreateFile", ntinternals.FunctionName("http://undocumented.ntinternals.net/UserMode/Undocumented Functions/NT Objects/File/NtCreateFile.html"))
	assert.Equal(t, "NtClose", ntinternals.FunctionName("http://host/NtClose"))
}

const treeScript = `var TITEMS = [
 ["NTinternals", "default.htm", "1",
  ["File", null, "1",
   ["NtCreateFile", "UserMode/File/NtCreateFile.html", "11"],
   ["NtClose", "UserMode/File/NtClose.html", "11"]
  ]
 ]
];`

func upload(t *testing.T, fs afs.Service, location, content string) {
	err := fs.Upload(context.Background(), location, file.DefaultFileOsMode, bytes.NewReader([]byte(content)))
	assert.NoError(t, err)
}

func TestInspector_Inspect(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	baseURL := "mem://localhost/ntinternals/site/"
	upload(t, fs, baseURL+"files/treearr.js", treeScript)
	upload(t, fs, baseURL+"UserMode/File/NtCreateFile.html", createFilePage)
	upload(t, fs, baseURL+"UserMode/File/NtClose.html", "NtClose(\r\n IN HANDLE <i><font color=\"blue\">ObjectHandle</font></i> );")

	inspector := ntinternals.NewInspector(baseURL, ntinternals.WithFs(fs), ntinternals.WithTreeURL(baseURL+"files/treearr.js"))
	links, err := inspector.Links(ctx)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{baseURL + "UserMode/File/NtCreateFile.html", baseURL + "UserMode/File/NtClose.html"}, links)

	mapping, err := inspector.Inspect(ctx)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, declaration.Mapping{
		"NtCreateFile": {"FileHandle", "DesiredAccess", "AllocationSize"},
		"NtClose":      {"ObjectHandle"},
	}, mapping)
}

func TestInspector_Inspect_MissingPage(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	baseURL := "mem://localhost/ntinternals/partial/"
	upload(t, fs, baseURL+"files/treearr.js", treeScript)
	upload(t, fs, baseURL+"UserMode/File/NtClose.html", "NtClose(\r\n IN HANDLE <i><font color=\"blue\">Handle</font></i> );")

	_, err := ntinternals.NewInspector(baseURL, ntinternals.WithFs(fs), ntinternals.WithTreeURL(baseURL+"files/treearr.js")).Inspect(ctx)
	assert.Error(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	inspector := ntinternals.NewInspector(baseURL,
		ntinternals.WithFs(fs),
		ntinternals.WithTreeURL(baseURL+"files/treearr.js"),
		ntinternals.WithSkipFailed(true),
		ntinternals.WithLogger(logger))
	mapping, err := inspector.Inspect(ctx)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, declaration.Mapping{"NtClose": {"Handle"}}, mapping)

	var warnings int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)
}
