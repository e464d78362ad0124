package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptStatus(t *testing.T) {
	tests := []struct {
		status   string
		accepted bool
	}{
		{"processing", true},
		{"pending", true},
		{"on-hold", true},
		{"completed", false},
		{"cancelled", false},
		{"refunded", false},
		{"failed", false},
		// Unknown statuses pass through; exclusion is an explicit list.
		{"some-future-status", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.accepted, AcceptStatus(tt.status))
		})
	}
}
