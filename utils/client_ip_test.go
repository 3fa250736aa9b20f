package utils_test

import (
	"testing"

	"github.com/asifrahman99/course_bazaar/utils"
	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	assert.Equal(t, "203.0.113.7", utils.ClientIP("203.0.113.7", ""))
	assert.Equal(t, "203.0.113.7", utils.ClientIP("203.0.113.7, 10.0.0.1, 10.0.0.2", ""))
	assert.Equal(t, "203.0.113.7", utils.ClientIP(" 203.0.113.7 , 10.0.0.1", ""))
	assert.Equal(t, "198.51.100.9", utils.ClientIP("", "198.51.100.9"))
	assert.Equal(t, "198.51.100.9", utils.ClientIP("  ", "198.51.100.9"))
	assert.Equal(t, "unknown", utils.ClientIP("", ""))
}
