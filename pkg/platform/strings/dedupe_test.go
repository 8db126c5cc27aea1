package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil slice", nil, []string{}},
		{"trims whitespace", []string{"  kafka-1:9092 ", "kafka-2:9092"}, []string{"kafka-1:9092", "kafka-2:9092"}},
		{"drops repeats keeping first", []string{"b", "a", "b"}, []string{"b", "a"}},
		{"drops empties", []string{"a", "", "   "}, []string{"a"}},
		{"case sensitive", []string{"Dhaka", "dhaka"}, []string{"Dhaka", "dhaka"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , ,"))
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitList("a:9092, b:9092,a:9092"))
}
