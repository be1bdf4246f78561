package services

import "strings"

// CustomField is a free-form annotation on a line item, e.g. a licence or
// booking reference. It never takes part in monetary computation.
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseCustomFields reads "Name: Value" (or "Name=Value") pairs, one per
// line. Blank lines and lines without a name are skipped; a repeated name
// overwrites the earlier value but keeps its original position.
func ParseCustomFields(text string) []CustomField {
	var fields []CustomField
	index := make(map[string]int)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sep := strings.IndexAny(line, ":=")
		if sep <= 0 {
			continue
		}
		name := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			fields[i].Value = value
			continue
		}
		index[name] = len(fields)
		fields = append(fields, CustomField{Name: name, Value: value})
	}
	return fields
}

// FormatCustomFields is the inverse of ParseCustomFields.
func FormatCustomFields(fields []CustomField) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f.Name+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}

// CustomFieldValue returns the value stored under name, or "".
func CustomFieldValue(fields []CustomField, name string) string {
	for _, f := range fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// CustomFieldNames returns the union of custom field names across items in
// first-seen order. Views use it to decide which extra columns to draw.
func CustomFieldNames(items []LineItem) []string {
	seen := make(map[string]bool)
	var names []string
	for _, it := range items {
		for _, f := range it.CustomFields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	return names
}
