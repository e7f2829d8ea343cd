package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		metroKM float64
		want    string
	}{
		{name: "city center", metroKM: 0, want: ClassUrbanCore},
		{name: "urban core boundary", metroKM: 10, want: ClassUrbanCore},
		{name: "inner suburb", metroKM: 10.1, want: ClassSuburban},
		{name: "suburban boundary", metroKM: 40, want: ClassSuburban},
		{name: "exurb", metroKM: 75, want: ClassExurban},
		{name: "exurban boundary", metroKM: 100, want: ClassExurban},
		{name: "rural", metroKM: 100.1, want: ClassRural},
		{name: "deep rural", metroKM: 500, want: ClassRural},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.metroKM))
		})
	}
}
