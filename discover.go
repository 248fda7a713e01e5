package mdfusion

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// FindMarkdownFiles returns every *.md file under root, sorted in natural
// order of the path relative to root: digit runs compare numerically, so
// "ch2.md" sorts before "ch10.md".
func FindMarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return naturalLess(relOrSelf(files[i], root), relOrSelf(files[j], root))
	})
	return files, nil
}

func relOrSelf(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// naturalLess compares two strings treating digit runs as numbers and the
// rest case-insensitively.
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		aTok, aNum, aRest := nextToken(a)
		bTok, bNum, bRest := nextToken(b)

		switch {
		case aNum && bNum:
			an, bn := parseNum(aTok), parseNum(bTok)
			if an != bn {
				return an < bn
			}
		case aNum != bNum:
			// Mixed kinds fall back to text order.
			return strings.ToLower(aTok) < strings.ToLower(bTok)
		default:
			al, bl := strings.ToLower(aTok), strings.ToLower(bTok)
			if al != bl {
				return al < bl
			}
		}
		a, b = aRest, bRest
	}
	return len(a) < len(b)
}

// nextToken splits off the leading run of digits or non-digits.
func nextToken(s string) (tok string, isNum bool, rest string) {
	isNum = unicode.IsDigit(rune(s[0]))
	for i, r := range s {
		if unicode.IsDigit(r) != isNum {
			return s[:i], isNum, s[i:]
		}
	}
	return s, isNum, ""
}

func parseNum(s string) int64 {
	var n int64
	for _, r := range s {
		n = n*10 + int64(r-'0')
	}
	return n
}
