package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"5511999990000", "*********0000"},
		{"(11) 99999-0000", "(**) *****-0000"},
		{"0000", "0000"},
		{"123", "123"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, maskPhone(tt.in), "maskPhone(%q)", tt.in)
	}
}
