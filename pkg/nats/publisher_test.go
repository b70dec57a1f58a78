package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectPrefix(t *testing.T) {
	assert.Equal(t, "activity", SubjectPrefix("ACTIVITY"))
	assert.Equal(t, "legal_events", SubjectPrefix("Legal_Events"))
}
