// Package frontmatter splits a content file into its YAML metadata block and
// body text.
//
// Metadata is decoded into a loosely typed map; callers narrow it to concrete
// fields with String and Int. A file without a metadata block, or with a block
// that cannot be decoded, still yields a body.
package frontmatter

import (
	"bytes"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/dimafomin/chef-site-backend/errs"
)

const delimiter = "---"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var yamlFormat = adrg.NewFormat(delimiter, delimiter, yaml.Unmarshal)

// Result is a parsed content file.
type Result struct {
	Metadata       map[string]any
	Body           string
	HadFrontMatter bool
	// Warning is set when a metadata block was present but had to be discarded.
	Warning error
}

// Parse never fails: malformed or unterminated metadata is reported through
// Result.Warning and the metadata map is left empty. Split decides whether a
// block is present; the block itself is decoded by adrg/frontmatter.
func Parse(raw []byte) Result {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	block, body, had, err := Split(raw)
	if err != nil {
		return Result{Metadata: map[string]any{}, Body: string(raw), Warning: err}
	}
	if !had {
		return Result{Metadata: map[string]any{}, Body: string(raw)}
	}

	res := Result{Metadata: map[string]any{}, Body: string(body), HadFrontMatter: true}
	if len(bytes.TrimSpace(block)) == 0 {
		return res
	}

	var fields map[string]any
	rest, err := adrg.Parse(bytes.NewReader(raw), &fields, yamlFormat)
	if err != nil {
		res.Warning = errs.NewMalformedFrontMatterError(err)
		return res
	}
	res.Body = string(rest)
	if fields != nil {
		res.Metadata = fields
	}
	return res
}

// Split separates a `---` delimited metadata block from the body.
//
// If the content does not start with a delimiter line, had is false and body
// is the full input. An opening delimiter without a closing one is an error.
func Split(content []byte) (block []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if rest := content[start:]; bytes.Equal(rest, []byte(delimiter)) {
		return []byte{}, []byte{}, true, nil
	}
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closing := []byte(nl + delimiter)
	idx := bytes.Index(content[start:], closing)
	for idx >= 0 {
		end := start + idx + len(closing)
		// The closing delimiter must be the whole line.
		if end == len(content) || bytes.HasPrefix(content[end:], []byte(nl)) {
			bodyStart := end
			if end < len(content) {
				bodyStart += len(nl)
			}
			return content[start : start+idx+len(nl)], content[bodyStart:], true, nil
		}
		next := bytes.Index(content[end:], closing)
		if next < 0 {
			break
		}
		idx = end - start + next
	}
	return nil, nil, false, errs.ErrMissingClosingDelimiter
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
