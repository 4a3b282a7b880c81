package header

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/ntdecl/declaration"
)

const (
	blockDelimiter = ";\n\nHOOKDEF"
	optionalMarker = "OPTIONAL"
	voidMarker     = "VOID"
)

var (
	tokenSeparator = regexp.MustCompile(", |,\n|\n")
	blankLines     = regexp.MustCompile(`\n{3,}`)
)

// Inspector extracts native API declarations from a HOOKDEF macro header
type Inspector struct {
	location string
	fs       afs.Service
}

// Option represents inspector option
type Option func(i *Inspector)

// WithFs sets file system service
func WithFs(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// Inspect downloads the header and extracts declarations
func (i *Inspector) Inspect(ctx context.Context) (declaration.Mapping, error) {
	src, err := i.fs.DownloadWithURL(ctx, i.location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header %v", i.location)
	}
	mapping, err := InspectSource(src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect header %v", i.location)
	}
	return mapping, nil
}

// InspectSource extracts native API declarations from header source
func InspectSource(src []byte) (declaration.Mapping, error) {
	text, err := clean(string(src))
	if err != nil {
		return nil, err
	}
	result := declaration.Mapping{}
	blocks := strings.Split(text, blockDelimiter)
	for _, block := range blocks[1:] {
		name, args, ok := parseBlock(block)
		if !ok || !declaration.IsNative(name) {
			continue
		}
		result[name] = args
	}
	return result, nil
}

// clean drops comments, directives and the license banner
func clean(text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" || strings.HasPrefix(line, "/") || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "*") {
			start = i
			break
		}
	}
	if start == -1 {
		return "", errors.New("leading block comment terminator not found")
	}
	if start+2 >= len(lines) {
		return "", nil
	}
	lines = lines[start+2:]
	lines[0] = ";" + lines[0]
	return blankLines.ReplaceAllString(strings.Join(lines, ""), "\n\n"), nil
}

// parseBlock splits a single HOOKDEF block into name and argument names
func parseBlock(block string) (string, []string, bool) {
	if len(block) < 2 {
		return "", nil, false
	}
	tokens := tokenSeparator.Split(block[1:len(block)-1], -1)
	if len(tokens) < 3 {
		return "", nil, false
	}
	name := strings.TrimSpace(tokens[2])
	args := []string{}
	if len(tokens) > 4 {
		for _, token := range tokens[3 : len(tokens)-1] {
			if arg := argumentName(token); arg != "" {
				args = append(args, arg)
			}
		}
	}
	for i, arg := range args {
		if arg == voidMarker {
			args = append(args[:i], args[i+1:]...)
			break
		}
	}
	return name, args, true
}

// argumentName returns parameter name dropping annotations, type and optional marker
func argumentName(token string) string {
	words := strings.Fields(token)
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	if last := words[len(words)-1]; last != optionalMarker {
		return last
	}
	return words[len(words)-2]
}

// NewInspector creates a header inspector for the location
func NewInspector(location string, options ...Option) *Inspector {
	ret := &Inspector{location: location}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}
