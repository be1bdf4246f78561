package services

import (
	"reflect"
	"testing"
)

func TestParseCustomFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []CustomField
	}{
		{"empty", "", nil},
		{"colon and equals", "Meal Plan: CP\nGuest=Asha", []CustomField{
			{Name: "Meal Plan", Value: "CP"},
			{Name: "Guest", Value: "Asha"},
		}},
		{"skips junk", "\n  \nno separator\n: orphan value\nRef: 42", []CustomField{
			{Name: "Ref", Value: "42"},
		}},
		{"duplicate keeps position", "A: 1\nB: 2\nA: 3", []CustomField{
			{Name: "A", Value: "3"},
			{Name: "B", Value: "2"},
		}},
		{"value with colon", "Check-in: 14:00", []CustomField{
			{Name: "Check-in", Value: "14:00"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCustomFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCustomFields(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCustomFields_RoundTrip(t *testing.T) {
	fields := []CustomField{{Name: "Meal Plan", Value: "MAP"}, {Name: "Ref", Value: "B-7"}}
	text := FormatCustomFields(fields)
	if text != "Meal Plan: MAP\nRef: B-7" {
		t.Errorf("FormatCustomFields() = %q", text)
	}
	if got := ParseCustomFields(text); !reflect.DeepEqual(got, fields) {
		t.Errorf("round trip = %+v", got)
	}
}

func TestCustomFieldNames(t *testing.T) {
	items := []LineItem{
		{CustomFields: []CustomField{{Name: "Meal Plan"}, {Name: "Ref"}}},
		{},
		{CustomFields: []CustomField{{Name: "Ref"}, {Name: "Guest"}}},
	}
	want := []string{"Meal Plan", "Ref", "Guest"}
	if got := CustomFieldNames(items); !reflect.DeepEqual(got, want) {
		t.Errorf("CustomFieldNames() = %v, want %v", got, want)
	}
	if got := CustomFieldValue(items[2].CustomFields, "Guest"); got != "" {
		t.Errorf("CustomFieldValue = %q, want empty", got)
	}
	if got := CustomFieldValue([]CustomField{{Name: "X", Value: "1"}}, "X"); got != "1" {
		t.Errorf("CustomFieldValue = %q, want 1", got)
	}
}
