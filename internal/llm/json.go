package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	keyValueRe   = regexp.MustCompile(`"([^"]+)"\s*:\s*("([^"]*)"|\[[^\]]*\])`)
)

// ExtractJSON pulls a JSON object out of a model reply. Models wrap JSON in
// prose or markdown fences often enough that plain unmarshal is only the
// first attempt; a regex-extracted object and a line-by-line key scrape
// follow before giving up.
func ExtractJSON(text string, out any) error {
	if err := json.Unmarshal([]byte(text), out); err == nil {
		return nil
	}

	if m := jsonObjectRe.FindString(text); m != "" {
		if err := json.Unmarshal([]byte(m), out); err == nil {
			return nil
		}
	}

	scraped := scrapeKeyValues(text)
	if len(scraped) == 0 {
		return errNoJSON
	}
	raw, err := json.Marshal(scraped)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// scrapeKeyValues recovers "key": "value" and "key": [...] pairs from
// replies whose braces did not survive transport intact.
func scrapeKeyValues(text string) map[string]any {
	result := make(map[string]any)
	for _, line := range strings.Split(text, "\n") {
		m := keyValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := m[1]
		if strings.HasPrefix(m[2], "[") {
			var list []string
			if err := json.Unmarshal([]byte(m[2]), &list); err == nil {
				result[key] = list
			}
			continue
		}
		result[key] = m[3]
	}
	return result
}

type jsonError string

func (e jsonError) Error() string { return string(e) }

const errNoJSON = jsonError("no JSON object found in reply")
