package mdfusion

import (
	"fmt"
	"os"

	"github.com/alnah/go-mdfusion/internal/fileutil"
)

// defaultHeader is the LaTeX preamble applied to every PDF render: tighter
// margins, figures pinned where they appear, centered section headings.
const defaultHeader = `\usepackage[margin=1in]{geometry}
\usepackage{float}
\floatplacement{figure}{H}
\usepackage{sectsty}
\sectionfont{\centering\fontsize{16}{18}\selectfont}
`

// BuildHeader writes the LaTeX header to a temp file, appending the user's
// header.tex between markers when the file exists. Returns the file path and
// a cleanup function.
func BuildHeader(userHeader string) (string, func(), error) {
	content := defaultHeader
	if userHeader != "" && fileutil.FileExists(userHeader) {
		user, err := os.ReadFile(userHeader) // #nosec G304 -- user-provided path
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", userHeader, err)
		}
		content += "\n% --- begin user header.tex ---\n" +
			string(user) +
			"\n% --- end user header.tex ---\n"
	}
	return fileutil.WriteTempFile(content, "tex")
}
