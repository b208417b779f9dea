// Package prompt expands ${path} placeholders in stored prompt templates.
package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches ${ ... } blocks, non-greedy up to the next brace.
var placeholderPattern = regexp.MustCompile(`\$\{(.*?)\}`)

// Resolve substitutes every ${key.path} placeholder in template with the value
// found by descending payload along the dotted path. Unresolvable paths
// degrade to an empty substitution; Resolve never fails.
func Resolve(template string, payload map[string]interface{}) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		inner := placeholderPattern.FindStringSubmatch(match)
		if len(inner) < 2 {
			return ""
		}
		key := strings.TrimSpace(inner[1])
		return stringify(lookup(payload, key))
	})
}

// Variables returns the deduplicated placeholder names referenced by template,
// in order of first appearance. A template without placeholders (the dynamic
// trigger case) yields an empty slice.
func Variables(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// lookup walks payload one level per dot-separated segment. A missing key or a
// non-object node short-circuits to nil.
func lookup(payload map[string]interface{}, path string) interface{} {
	var current interface{} = payload
	for _, part := range strings.Split(path, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = node[part]
		if !ok {
			return nil
		}
	}
	return current
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
