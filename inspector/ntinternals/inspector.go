package ntinternals

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/ntdecl/declaration"
	"github.com/viant/ntdecl/inspector/treearr"
	"golang.org/x/net/html"
)

const (
	DefaultBaseURL = "http://undocumented.ntinternals.net/"
	DefaultTreeURL = "http://undocumented.ntinternals.net/files/treearr.js"
)

// argumentExpr matches argument names rendered in italic blue font
var argumentExpr = regexp.MustCompile(`<i><font color="blue">(.*?)</font></i>`)

// Inspector scrapes native API declarations from the NTinternals site
type Inspector struct {
	baseURL    string
	treeURL    string
	skipFailed bool
	fs         afs.Service
	logger     logrus.FieldLogger
}

// Option represents inspector option
type Option func(i *Inspector)

// WithFs sets file system service
func WithFs(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// WithTreeURL sets tree script location
func WithTreeURL(URL string) Option {
	return func(i *Inspector) {
		if URL != "" {
			i.treeURL = URL
		}
	}
}

// WithSkipFailed logs and skips pages that cannot be downloaded instead of failing
func WithSkipFailed(skip bool) Option {
	return func(i *Inspector) {
		i.skipFailed = skip
	}
}

// WithLogger sets logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// Links returns absolute URLs of native API pages referenced by the tree script
func (i *Inspector) Links(ctx context.Context) ([]string, error) {
	script, err := i.fs.DownloadWithURL(ctx, i.treeURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download tree %v", i.treeURL)
	}
	root, err := treearr.Parse(ctx, script)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse tree %v", i.treeURL)
	}
	targets := root.Targets()
	links := make([]string, 0, len(targets))
	for _, target := range targets {
		links = append(links, url.Join(i.baseURL, target))
	}
	return links, nil
}

// Inspect collects page links and extracts declarations from every page
func (i *Inspector) Inspect(ctx context.Context) (declaration.Mapping, error) {
	links, err := i.Links(ctx)
	if err != nil {
		return nil, err
	}
	i.logger.WithField("links", len(links)).Debug("collected ntinternals links")
	result := declaration.Mapping{}
	for _, link := range links {
		name := FunctionName(link)
		page, err := i.fs.DownloadWithURL(ctx, link)
		if err != nil {
			if i.skipFailed {
				i.logger.WithError(err).WithField("url", link).Warn("skipping page")
				continue
			}
			return nil, errors.Wrapf(err, "failed to download %v", link)
		}
		result[name] = ExtractArgs(name, page)
		i.logger.WithFields(logrus.Fields{"function": name, "args": len(result[name])}).Debug("scraped page")
	}
	return result, nil
}

// FunctionName returns the page file name without extension
func FunctionName(link string) string {
	name := path.Base(link)
	return strings.TrimSuffix(name, path.Ext(name))
}

// ExtractArgs returns argument names declared on the page for the function
func ExtractArgs(name string, page []byte) []string {
	text := string(page)
	args := []string{}
	start := strings.Index(text, name+"(")
	if start == -1 {
		return args
	}
	end := strings.Index(text[start:], ");")
	if end == -1 {
		return args
	}
	region := strings.ReplaceAll(text[start:start+end], "\r\n", "")
	for _, match := range argumentExpr.FindAllStringSubmatch(region, -1) {
		args = append(args, strings.TrimSpace(html.UnescapeString(match[1])))
	}
	return args
}

// NewInspector creates an inspector for the site base URL
func NewInspector(baseURL string, options ...Option) *Inspector {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ret := &Inspector{baseURL: baseURL, treeURL: DefaultTreeURL}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = logrus.StandardLogger()
	}
	return ret
}
