package mdfusion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// deckConfig is the payload exposed to the deck's scripts as window.config.
type deckConfig struct {
	FooterText      string `json:"footerText"`
	AnimateAllLines bool   `json:"animateAllLines"`
}

// InjectDeckConfig inserts a window.config script into the document head so
// the bundled deck scripts can read the run settings. When the document has
// no </head>, the script is prepended instead.
func InjectDeckConfig(htmlContent string, p *Presentation) (string, error) {
	payload, err := json.Marshal(deckConfig{
		FooterText:      p.FooterText,
		AnimateAllLines: p.AnimateAllLines,
	})
	if err != nil {
		return "", fmt.Errorf("encoding deck config: %w", err)
	}

	script := "<script>window.config = " + string(payload) + ";</script>"
	if strings.Contains(htmlContent, "</head>") {
		return strings.Replace(htmlContent, "</head>", script+"\n</head>", 1), nil
	}
	return script + "\n" + htmlContent, nil
}
